package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"villa/config"
	"villa/infras/jwt"
	jwtMocks "villa/infras/jwt/mocks"
	"villa/infras/otel/mocks"
	"villa/internal/domains/auth/model/dto"
	"villa/internal/domains/auth/service"
	"villa/shared/constant"
	"villa/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.App.Admin.Secret = secret

	return cfg
}

func TestAuthService_IsAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(newConfig("s3cret"), mockJWT, mocks.NewOtel())

	tests := []struct {
		name        string
		credentials dto.Credentials
		setupMock   func()
		want        bool
	}{
		{
			name:        "valid secret",
			credentials: dto.Credentials{Secret: "s3cret"},
			setupMock:   func() {},
			want:        true,
		},
		{
			name:        "wrong secret",
			credentials: dto.Credentials{Secret: "guess"},
			setupMock:   func() {},
		},
		{
			name:        "no credentials",
			credentials: dto.Credentials{},
			setupMock:   func() {},
		},
		{
			name:        "valid admin token",
			credentials: dto.Credentials{Token: "good"},
			setupMock: func() {
				mockJWT.EXPECT().
					ValidateToken("good").
					Return(&jwt.Claims{Role: constant.RoleAdmin, TokenID: "t-1"}, nil)
			},
			want: true,
		},
		{
			name:        "token with another role",
			credentials: dto.Credentials{Token: "guest"},
			setupMock: func() {
				mockJWT.EXPECT().
					ValidateToken("guest").
					Return(&jwt.Claims{Role: constant.RoleGuest, TokenID: "t-2"}, nil)
			},
		},
		{
			name:        "expired token",
			credentials: dto.Credentials{Token: "old"},
			setupMock: func() {
				mockJWT.EXPECT().
					ValidateToken("old").
					Return(nil, jwt.ErrExpiredToken)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			assert.Equal(t, tt.want, svc.IsAdmin(context.Background(), tt.credentials))
		})
	}
}

func TestAuthService_IsAdmin_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.New(newConfig(""), jwtMocks.NewMockJWT(ctrl), mocks.NewOtel())

	assert.False(t, svc.IsAdmin(context.Background(), dto.Credentials{Secret: ""}))
	assert.False(t, svc.IsAdmin(context.Background(), dto.Credentials{Secret: "anything"}))
	assert.False(t, svc.IsAdmin(context.Background(), dto.Credentials{Token: "anything"}))
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(newConfig("s3cret"), mockJWT, mocks.NewOtel())

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantCode  int
		wantToken string
	}{
		{
			name: "valid secret",
			req:  dto.LoginRequest{Secret: "s3cret"},
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateToken(gomock.Any(), constant.RoleAdmin).
					Return(&jwt.Token{AccessToken: "signed", TokenType: "Bearer", ExpiresIn: 7200}, nil)
			},
			wantToken: "signed",
		},
		{
			name:      "invalid secret",
			req:       dto.LoginRequest{Secret: "nope"},
			setupMock: func() {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "signing failure",
			req:  dto.LoginRequest{Secret: "s3cret"},
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateToken(gomock.Any(), constant.RoleAdmin).
					Return(nil, errors.New("jwt secret is not configured"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, res.AccessToken)
			assert.Equal(t, "Bearer", res.TokenType)
		})
	}
}
