package brevo

//go:generate go run go.uber.org/mock/mockgen -source=./brevo.go -destination=./mocks/brevo_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"villa/config"
	"villa/infras/otel"
	"villa/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	headerAPIKey   = "api-key"
	pathSMTPEmail  = "/smtp/email"
	maxErrorLength = 512
)

var ErrNotConfigured = errors.New("brevo: api key is not configured")

type Contact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Email is a transactional email as accepted by POST /smtp/email.
type Email struct {
	Sender      Contact   `json:"sender"`
	To          []Contact `json:"to"`
	Cc          []Contact `json:"cc,omitempty"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
}

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("brevo: unexpected status %d: %s", e.StatusCode, e.Body)
}

type Client interface {
	SendTransactionalEmail(ctx context.Context, email Email) (messageID string, err error)
}

type clientImpl struct {
	hc      *http.Client
	baseURL string
	apiKey  string
	otel    otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Client {
	return &clientImpl{
		hc:      &http.Client{Timeout: time.Duration(cfg.Mail.TimeoutSeconds) * time.Second},
		baseURL: strings.TrimRight(cfg.Mail.Brevo.BaseURL, "/"),
		apiKey:  cfg.Mail.Brevo.APIKey,
		otel:    otel,
	}
}

func (c *clientImpl) SendTransactionalEmail(ctx context.Context, email Email) (messageID string, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".brevo.SendTransactionalEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(email)
	if err != nil {
		return "", fmt.Errorf("brevo: encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathSMTPEmail, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("brevo: build request: %w", err)
	}

	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set("Accept", constant.ContentTypeJSON)

	res, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("brevo: send email: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, constant.RequestMaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("brevo: read response: %w", err)
	}

	if res.StatusCode >= http.StatusBadRequest {
		body := string(raw)
		if len(body) > maxErrorLength {
			body = body[:maxErrorLength]
		}

		return "", &APIError{StatusCode: res.StatusCode, Body: body}
	}

	var out struct {
		MessageID string `json:"messageId"`
	}

	if err = json.Unmarshal(raw, &out); err != nil {
		log.Warn().Err(err).Msg("brevo accepted the email but the response was not JSON")
	}

	scope.SetAttribute("brevo.message_id", out.MessageID)

	return out.MessageID, nil
}
