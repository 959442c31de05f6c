package mpesa_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"villa/config"
	"villa/infras/mpesa"
	"villa/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) mpesa.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Payment.TimeoutSeconds = 5
	cfg.Payment.Mpesa.BaseURL = server.URL
	cfg.Payment.Mpesa.ConsumerKey = "key"
	cfg.Payment.Mpesa.ConsumerSecret = "secret"

	return mpesa.New(cfg, mocks.NewOtel())
}

func TestToken(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/v1/generate", r.URL.Path)
		assert.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("key:secret")), r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":"3599"}`))
	})

	token, err := client.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok", token.Token)
	assert.Equal(t, 3599, token.TTL())
}

func TestToken_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantAPI bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"errorMessage":"Invalid credentials"}`, wantAPI: true},
		{name: "empty token", status: http.StatusOK, body: `{"expires_in":"3599"}`},
		{name: "garbage", status: http.StatusOK, body: `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Token(context.Background())
			require.Error(t, err)

			var apiErr *mpesa.APIError
			assert.Equal(t, tt.wantAPI, errors.As(err, &apiErr))
		})
	}
}

func TestSTKPush(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mpesa/stkpush/v1/processrequest", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req mpesa.STKPushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(26500), req.Amount)
		assert.Equal(t, "254712345678", req.PhoneNumber)

		_, _ = w.Write([]byte(`{"MerchantRequestID":"m-1","CheckoutRequestID":"ws_CO_1","ResponseCode":"0","ResponseDescription":"Success. Request accepted for processing","CustomerMessage":"Success"}`))
	})

	res, err := client.STKPush(context.Background(), "tok", mpesa.STKPushRequest{
		Amount:      26500,
		PhoneNumber: "254712345678",
	})
	require.NoError(t, err)

	assert.Equal(t, "ws_CO_1", res.CheckoutRequestID)
	assert.True(t, res.ResponseCode.OK())
}

func TestSTKQuery(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mpesa/stkpushquery/v1/query", r.URL.Path)

		_, _ = w.Write([]byte(`{"ResponseCode":"0","CheckoutRequestID":"ws_CO_1","ResultCode":"1032","ResultDesc":"Request cancelled by user"}`))
	})

	res, err := client.STKQuery(context.Background(), "tok", mpesa.STKQueryRequest{CheckoutRequestID: "ws_CO_1"})
	require.NoError(t, err)

	assert.Equal(t, mpesa.Code("1032"), res.ResultCode)
	assert.False(t, res.ResultCode.OK())
}

func TestCode_UnmarshalJSON(t *testing.T) {
	var payload struct {
		A mpesa.Code `json:"a"`
		B mpesa.Code `json:"b"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a":0,"b":"1032"}`), &payload))

	assert.True(t, payload.A.OK())
	assert.Equal(t, mpesa.Code("1032"), payload.B)
}

func TestPassword(t *testing.T) {
	got := mpesa.Password("174379", "passkey", "20260210120000")

	decoded, err := base64.StdEncoding.DecodeString(got)
	require.NoError(t, err)
	assert.Equal(t, "174379passkey20260210120000", string(decoded))
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, mpesa.SandboxBaseURL, mpesa.BaseURL("sandbox", ""))
	assert.Equal(t, mpesa.ProductionBaseURL, mpesa.BaseURL("production", ""))
	assert.Equal(t, "http://localhost:9000", mpesa.BaseURL("production", "http://localhost:9000/"))
}

func TestAccessToken_TTL(t *testing.T) {
	assert.Equal(t, 3599, mpesa.AccessToken{ExpiresIn: "soon"}.TTL())
	assert.Equal(t, 120, mpesa.AccessToken{ExpiresIn: "120"}.TTL())
}
