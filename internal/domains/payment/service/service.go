package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"villa/config"
	"villa/infras/mpesa"
	"villa/infras/otel"
	"villa/infras/paystack"
	"villa/internal/domains/payment/model"
	"villa/shared/cache"
	"villa/shared/constant"
)

var (
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	ErrNotConfigured     = errors.New("payment provider is not configured")
)

// Gateway is one payment provider adapter.
type Gateway interface {
	Method() model.Method
	Initiate(ctx context.Context, charge model.Charge) (model.Artifact, error)
	Verify(ctx context.Context, reference string) (model.Outcome, error)
}

// Payment routes charges to the gateway for the chosen method.
type Payment interface {
	Supports(method model.Method) bool
	Initiate(ctx context.Context, method model.Method, charge model.Charge) (model.Artifact, error)
	Verify(ctx context.Context, method model.Method, reference string) (model.Outcome, error)
}

type serviceImpl struct {
	gateways map[model.Method]Gateway
	otel     otel.Otel
}

func New(cfg *config.Config, cache cache.RedisCache, mpesaClient mpesa.Client, paystackClient paystack.Client, otel otel.Otel) Payment {
	return NewWithGateways(otel,
		NewMobileMoney(cfg, cache, mpesaClient, otel),
		NewHostedCard(cfg, paystackClient, otel),
	)
}

// NewWithGateways builds a router over an explicit gateway set.
func NewWithGateways(otel otel.Otel, gateways ...Gateway) Payment {
	s := &serviceImpl{
		gateways: make(map[model.Method]Gateway, len(gateways)),
		otel:     otel,
	}

	for _, g := range gateways {
		s.gateways[g.Method()] = g
	}

	return s
}

func (s *serviceImpl) Supports(method model.Method) bool {
	_, ok := s.gateways[method]

	return ok
}

func (s *serviceImpl) Initiate(ctx context.Context, method model.Method, charge model.Charge) (res model.Artifact, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Initiate")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"payment.method":     string(method),
		"payment.booking_id": charge.BookingID,
	})

	gateway, err := s.gateway(method)
	if err != nil {
		return res, err
	}

	res, err = gateway.Initiate(ctx, charge)
	if err != nil {
		return res, fmt.Errorf("%s initiate: %w", method, err)
	}

	res.Method = method

	return res, nil
}

func (s *serviceImpl) Verify(ctx context.Context, method model.Method, reference string) (res model.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("payment.reference", reference)

	gateway, err := s.gateway(method)
	if err != nil {
		return res, err
	}

	res, err = gateway.Verify(ctx, reference)
	if err != nil {
		return res, fmt.Errorf("%s verify: %w", method, err)
	}

	res.Method = method

	return res, nil
}

func (s *serviceImpl) gateway(method model.Method) (Gateway, error) {
	g, ok := s.gateways[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}

	return g, nil
}
