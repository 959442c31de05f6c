package brevo_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"villa/config"
	"villa/infras/brevo"
	"villa/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, apiKey string, handler http.HandlerFunc) brevo.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Mail.TimeoutSeconds = 5
	cfg.Mail.Brevo.BaseURL = server.URL
	cfg.Mail.Brevo.APIKey = apiKey

	return brevo.New(cfg, mocks.NewOtel())
}

func TestSendTransactionalEmail(t *testing.T) {
	client := newClient(t, "xkeysib-test", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/smtp/email", r.URL.Path)
		assert.Equal(t, "xkeysib-test", r.Header.Get("api-key"))

		var email brevo.Email
		require.NoError(t, json.NewDecoder(r.Body).Decode(&email))
		assert.Equal(t, "New Booking Request from Jane", email.Subject)
		assert.Len(t, email.Cc, 1)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<msg-1@smtp-relay.mailin.fr>"}`))
	})

	id, err := client.SendTransactionalEmail(context.Background(), brevo.Email{
		Sender:      brevo.Contact{Email: "info@villa.example", Name: "Villa"},
		To:          []brevo.Contact{{Email: "host@villa.example", Name: "Host"}},
		Cc:          []brevo.Contact{{Email: "cohost@villa.example"}},
		Subject:     "New Booking Request from Jane",
		HTMLContent: "<p>hello</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "<msg-1@smtp-relay.mailin.fr>", id)
}

func TestSendTransactionalEmail_Errors(t *testing.T) {
	client := newClient(t, "xkeysib-test", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid_parameter","message":"email is not valid"}`))
	})

	_, err := client.SendTransactionalEmail(context.Background(), brevo.Email{Subject: "x"})

	var apiErr *brevo.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	unconfigured := newClient(t, "", func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected without api key")
	})

	_, err = unconfigured.SendTransactionalEmail(context.Background(), brevo.Email{Subject: "x"})
	assert.ErrorIs(t, err, brevo.ErrNotConfigured)
}
