package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"villa/infras/otel/mocks"
	authMocks "villa/internal/domains/auth/mocks"
	"villa/internal/domains/auth/model/dto"
	"villa/internal/handlers/auth"
	"villa/shared/failure"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandler_Login(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setupMock   func(svc *authMocks.MockAuth)
		wantStatus  int
		wantMessage string
	}{
		{
			name: "valid secret",
			body: `{"secret":"s3cret"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().
					Login(gomock.Any(), dto.LoginRequest{Secret: "s3cret"}).
					Return(dto.LoginResponse{AccessToken: "token", TokenType: "Bearer", ExpiresIn: 7200}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong secret",
			body: `{"secret":"nope"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().
					Login(gomock.Any(), gomock.Any()).
					Return(dto.LoginResponse{}, failure.Unauthorized("Unauthorized: Invalid Admin Secret"))
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Unauthorized: Invalid Admin Secret",
		},
		{
			name:        "missing secret",
			body:        `{}`,
			setupMock:   func(_ *authMocks.MockAuth) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "secret is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := authMocks.NewMockAuth(ctrl)
			tt.setupMock(svc)

			handler := auth.New(svc, mocks.NewOtel())
			r := chi.NewRouter()
			handler.Router(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/session", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantMessage != "" {
				var body response.Error
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, tt.wantMessage, body.Message)

				return
			}

			var res dto.LoginResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
			assert.Equal(t, "token", res.AccessToken)
		})
	}
}
