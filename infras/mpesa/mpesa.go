package mpesa

//go:generate go run go.uber.org/mock/mockgen -source=./mpesa.go -destination=./mocks/mpesa_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"villa/config"
	"villa/infras/otel"
	"villa/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	SandboxBaseURL    = "https://sandbox.safaricom.co.ke"
	ProductionBaseURL = "https://api.safaricom.co.ke"

	EnvProduction = "production"

	TimestampFormat          = "20060102150405"
	TransactionTypePayBill   = "CustomerPayBillOnline"
	ResponseCodeAccepted     = "0"
	defaultTokenExpirySecond = 3599

	pathOAuth    = "/oauth/v1/generate?grant_type=client_credentials"
	pathSTKPush  = "/mpesa/stkpush/v1/processrequest"
	pathSTKQuery = "/mpesa/stkpushquery/v1/query"
)

// Code is a Daraja result code. The API sends it as a number in callbacks and
// as a string in synchronous responses.
type Code string

func (c *Code) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode result code: %w", err)
		}

		*c = Code(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode result code: %w", err)
	}

	*c = Code(n.String())

	return nil
}

// OK reports a zero result code.
func (c Code) OK() bool {
	return c == ResponseCodeAccepted
}

type AccessToken struct {
	Token     string `json:"access_token"`
	ExpiresIn string `json:"expires_in"`
}

// TTL is the token lifetime in seconds.
func (t AccessToken) TTL() int {
	seconds, err := strconv.Atoi(t.ExpiresIn)
	if err != nil || seconds <= 0 {
		return defaultTokenExpirySecond
	}

	return seconds
}

type STKPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        Code   `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type STKQueryRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

type STKQueryResponse struct {
	ResponseCode        Code   `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResultCode          Code   `json:"ResultCode"`
	ResultDesc          string `json:"ResultDesc"`
}

// APIError is a non-2xx answer from Daraja.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mpesa: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the Safaricom Daraja API.
type Client interface {
	Token(ctx context.Context) (AccessToken, error)
	STKPush(ctx context.Context, token string, req STKPushRequest) (STKPushResponse, error)
	STKQuery(ctx context.Context, token string, req STKQueryRequest) (STKQueryResponse, error)
}

type clientImpl struct {
	hc             *http.Client
	baseURL        string
	consumerKey    string
	consumerSecret string
	otel           otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Client {
	return &clientImpl{
		hc:             &http.Client{Timeout: time.Duration(cfg.Payment.TimeoutSeconds) * time.Second},
		baseURL:        BaseURL(cfg.Payment.Mpesa.Env, cfg.Payment.Mpesa.BaseURL),
		consumerKey:    cfg.Payment.Mpesa.ConsumerKey,
		consumerSecret: cfg.Payment.Mpesa.ConsumerSecret,
		otel:           otel,
	}
}

// BaseURL picks the Daraja host for env unless override is set.
func BaseURL(env, override string) string {
	if override != "" {
		return strings.TrimRight(override, "/")
	}

	if env == EnvProduction {
		return ProductionBaseURL
	}

	return SandboxBaseURL
}

// Password is base64(shortcode + passkey + timestamp).
func Password(shortcode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortcode + passkey + timestamp))
}

func (c *clientImpl) Token(ctx context.Context) (res AccessToken, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".mpesa.Token")
	defer scope.End()
	defer scope.TraceIfError(err)

	basic := base64.StdEncoding.EncodeToString([]byte(c.consumerKey + ":" + c.consumerSecret))

	if err = c.do(ctx, http.MethodGet, pathOAuth, "Basic "+basic, nil, &res); err != nil {
		return res, err
	}

	if res.Token == "" {
		return res, fmt.Errorf("mpesa: oauth response carried no access token")
	}

	return res, nil
}

func (c *clientImpl) STKPush(ctx context.Context, token string, req STKPushRequest) (res STKPushResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".mpesa.STKPush")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = c.do(ctx, http.MethodPost, pathSTKPush, "Bearer "+token, req, &res)

	scope.SetAttribute("mpesa.checkout_request_id", res.CheckoutRequestID)

	return res, err
}

func (c *clientImpl) STKQuery(ctx context.Context, token string, req STKQueryRequest) (res STKQueryResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".mpesa.STKQuery")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("mpesa.checkout_request_id", req.CheckoutRequestID)

	err = c.do(ctx, http.MethodPost, pathSTKQuery, "Bearer "+token, req, &res)

	return res, err
}

func (c *clientImpl) do(ctx context.Context, method, path, authorization string, in, out any) error {
	var body io.Reader

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("mpesa: encode request: %w", err)
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("mpesa: build request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAuthorization, authorization)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("mpesa: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("mpesa: read response: %w", err)
	}

	if res.StatusCode >= http.StatusBadRequest {
		log.Error().Int("status", res.StatusCode).Str("path", path).RawJSON("body", jsonOrNull(raw)).Msg("mpesa request failed")

		return &APIError{StatusCode: res.StatusCode, Body: string(raw)}
	}

	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("mpesa: decode response: %w", err)
	}

	return nil
}

func jsonOrNull(raw []byte) []byte {
	if json.Valid(raw) {
		return raw
	}

	quoted, _ := json.Marshal(string(raw))

	return quoted
}
