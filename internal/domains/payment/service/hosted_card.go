package service

import (
	"context"
	"fmt"
	"math"
	"time"
	"villa/config"
	"villa/infras/otel"
	"villa/infras/paystack"
	"villa/internal/domains/payment/model"
	"villa/shared/constant"
)

// minorUnits is the Paystack subunit factor (cents, kobo).
const minorUnits = 100

type hostedCard struct {
	cfg    *config.Config
	client paystack.Client
	otel   otel.Otel
}

// NewHostedCard is the Paystack hosted checkout gateway.
func NewHostedCard(cfg *config.Config, client paystack.Client, otel otel.Otel) Gateway {
	return &hostedCard{
		cfg:    cfg,
		client: client,
		otel:   otel,
	}
}

func (g *hostedCard) Method() model.Method {
	return model.MethodPaystack
}

func (g *hostedCard) Initiate(ctx context.Context, charge model.Charge) (res model.Artifact, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.paystack.Initiate")
	defer scope.End()
	defer scope.TraceIfError(err)

	if g.cfg.Payment.Paystack.SecretKey == "" {
		return res, fmt.Errorf("paystack: %w", ErrNotConfigured)
	}

	auth, err := g.client.Initialize(ctx, paystack.InitializeRequest{
		Email:       charge.Email,
		Amount:      int64(math.Round(charge.Amount * minorUnits)),
		Currency:    charge.Currency,
		CallbackURL: g.cfg.Payment.Paystack.CallbackURL,
		Metadata: paystack.Metadata{
			BookingID: charge.BookingID,
			Name:      charge.Name,
			Phone:     charge.Phone,
		},
	})
	if err != nil {
		return res, err
	}

	return model.Artifact{
		Method:      model.MethodPaystack,
		Reference:   auth.Reference,
		RedirectURL: auth.AuthorizationURL,
	}, nil
}

func (g *hostedCard) Verify(ctx context.Context, reference string) (res model.Outcome, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.paystack.Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	if g.cfg.Payment.Paystack.SecretKey == "" {
		return res, fmt.Errorf("paystack: %w", ErrNotConfigured)
	}

	tx, err := g.client.Verify(ctx, reference)
	if err != nil {
		return res, err
	}

	res = model.Outcome{
		Method:    model.MethodPaystack,
		Reference: reference,
		Paid:      tx.Succeeded(),
		BookingID: tx.Metadata.BookingID,
		Receipt:   tx.Reference,
		Amount:    float64(tx.Amount) / minorUnits,
		Message:   tx.GatewayResponse,
	}

	if paidAt, perr := time.Parse(time.RFC3339, tx.PaidAt); perr == nil {
		res.PaidAt = paidAt
	}

	return res, nil
}
