package paystack

//go:generate go run go.uber.org/mock/mockgen -source=./paystack.go -destination=./mocks/paystack_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"villa/config"
	"villa/infras/otel"
	"villa/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	StatusSuccess = "success"

	pathInitialize = "/transaction/initialize"
	pathVerify     = "/transaction/verify/"
)

type Metadata struct {
	BookingID string `json:"bookingId,omitempty"`
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// UnmarshalJSON tolerates the empty string Paystack sends for transactions
// created without metadata.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || data[0] != '{' {
		*m = Metadata{}

		return nil
	}

	type plain Metadata

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode metadata: %w", err)
	}

	*m = Metadata(p)

	return nil
}

// InitializeRequest amounts are in the currency's minor unit.
type InitializeRequest struct {
	Email       string   `json:"email"`
	Amount      int64    `json:"amount"`
	Currency    string   `json:"currency,omitempty"`
	Reference   string   `json:"reference,omitempty"`
	CallbackURL string   `json:"callback_url,omitempty"`
	Metadata    Metadata `json:"metadata"`
}

type Authorization struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type Transaction struct {
	ID              int64    `json:"id"`
	Status          string   `json:"status"`
	Reference       string   `json:"reference"`
	Amount          int64    `json:"amount"`
	Currency        string   `json:"currency"`
	GatewayResponse string   `json:"gateway_response"`
	PaidAt          string   `json:"paid_at"`
	Metadata        Metadata `json:"metadata"`
}

// Succeeded reports whether the charge went through.
func (t Transaction) Succeeded() bool {
	return t.Status == StatusSuccess
}

type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// APIError is a failed Paystack call, either a non-2xx status or status=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paystack: status %d: %s", e.StatusCode, e.Message)
}

type Client interface {
	Initialize(ctx context.Context, req InitializeRequest) (Authorization, error)
	Verify(ctx context.Context, reference string) (Transaction, error)
}

type clientImpl struct {
	hc        *http.Client
	baseURL   string
	secretKey string
	otel      otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Client {
	return &clientImpl{
		hc:        &http.Client{Timeout: time.Duration(cfg.Payment.TimeoutSeconds) * time.Second},
		baseURL:   strings.TrimRight(cfg.Payment.Paystack.BaseURL, "/"),
		secretKey: cfg.Payment.Paystack.SecretKey,
		otel:      otel,
	}
}

func (c *clientImpl) Initialize(ctx context.Context, req InitializeRequest) (res Authorization, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".paystack.Initialize")
	defer scope.End()
	defer scope.TraceIfError(err)

	var env envelope[Authorization]
	if err = c.do(ctx, http.MethodPost, pathInitialize, req, &env); err != nil {
		return res, err
	}

	if env.Data.AuthorizationURL == "" {
		return res, &APIError{StatusCode: http.StatusOK, Message: "response carried no authorization_url"}
	}

	scope.SetAttribute("paystack.reference", env.Data.Reference)

	return env.Data, nil
}

func (c *clientImpl) Verify(ctx context.Context, reference string) (res Transaction, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".paystack.Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("paystack.reference", reference)

	var env envelope[Transaction]
	if err = c.do(ctx, http.MethodGet, pathVerify+url.PathEscape(reference), nil, &env); err != nil {
		return res, err
	}

	return env.Data, nil
}

// do sends an authenticated request and decodes the envelope into out.
func (c *clientImpl) do(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("paystack: encode request: %w", err)
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("paystack: build request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+c.secretKey)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("paystack: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("paystack: read response: %w", err)
	}

	var status struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
	}

	_ = json.Unmarshal(raw, &status)

	if res.StatusCode >= http.StatusBadRequest || !status.Status {
		log.Error().Int("status", res.StatusCode).Str("path", path).Str("message", status.Message).Msg("paystack request failed")

		message := status.Message
		if message == "" {
			message = http.StatusText(res.StatusCode)
		}

		return &APIError{StatusCode: res.StatusCode, Message: message}
	}

	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("paystack: decode response: %w", err)
	}

	return nil
}
