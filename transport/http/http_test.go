package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"villa/config"
	kafkaMocks "villa/infras/kafka/mocks"
	otelMocks "villa/infras/otel/mocks"
	authMocks "villa/internal/domains/auth/mocks"
	bookingMocks "villa/internal/domains/booking/mocks"
	"villa/internal/domains/booking/model/dto"
	pricingMocks "villa/internal/domains/pricing/mocks"
	authHandler "villa/internal/handlers/auth"
	bookingHandler "villa/internal/handlers/booking"
	paymentHandler "villa/internal/handlers/payment"
	pricingHandler "villa/internal/handlers/pricing"
	"villa/permissions"
	cacheMocks "villa/shared/cache/mocks"
	"villa/shared/constant"
	httpTransport "villa/transport/http"
	"villa/transport/http/middleware"
	"villa/transport/http/router"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type stack struct {
	server  *httpTransport.HTTP
	auth    *authMocks.MockAuth
	booking *bookingMocks.MockBookingService
}

func newStack(ctrl *gomock.Controller) stack {
	cfg := &config.Config{}
	otel := otelMocks.NewOtel()

	auth := authMocks.NewMockAuth(ctrl)
	booking := bookingMocks.NewMockBookingService(ctrl)
	pricing := pricingMocks.NewMockPricing(ctrl)

	r := router.New(router.DomainHandlers{
		Auth:    authHandler.New(auth, otel),
		Booking: bookingHandler.New(booking, otel),
		Pricing: pricingHandler.New(pricing, otel),
		Payment: paymentHandler.New(booking, otel),
	})

	server := httpTransport.New(
		cfg,
		r,
		middleware.NewAppMiddleware(otel, cfg, cacheMocks.NewMockRedisCache(ctrl)),
		middleware.NewAuthRoleMiddleware(auth, otel, permissions.Get()),
		otel,
		kafkaMocks.NewMockClient(ctrl),
	)

	return stack{server: server, auth: auth, booking: booking}
}

func TestHTTP_HealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newStack(ctrl)

	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, httpTransport.ServerStateReady, s.server.State())
}

func TestHTTP_AdminRoutes(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		setupMock  func(s stack)
		wantStatus int
	}{
		{
			name:       "no credentials",
			setupMock:  func(_ stack) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "wrong secret",
			secret: "nope",
			setupMock: func(s stack) {
				s.auth.EXPECT().IsAdmin(gomock.Any(), gomock.Any()).Return(false)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "operator",
			secret: "s3cret",
			setupMock: func(s stack) {
				s.auth.EXPECT().IsAdmin(gomock.Any(), gomock.Any()).Return(true)
				s.booking.EXPECT().GetAll(gomock.Any()).Return([]dto.ReservationResponse{}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := newStack(ctrl)
			tt.setupMock(s)

			req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
			if tt.secret != "" {
				req.Header.Set(constant.RequestHeaderAdminSecret, tt.secret)
			}

			rec := httptest.NewRecorder()
			s.server.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHTTP_PublicRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newStack(ctrl)

	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments/mobile-money/callback", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ResultCode":0,"ResultDesc":"Success"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	s.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/hosted-card/callback", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing payment reference.", rec.Body.String())
}
