package dto_test

import (
	"testing"
	"time"
	"villa/infras/jwt"
	"villa/internal/domains/auth/model/dto"

	"github.com/stretchr/testify/assert"
)

func TestLoginResponse_FromToken(t *testing.T) {
	expiresAt := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	token := &jwt.Token{
		AccessToken: "signed-token",
		TokenType:   "Bearer",
		ExpiresIn:   7200,
		ExpiresAt:   expiresAt,
	}

	var response dto.LoginResponse
	response.FromToken(token)

	assert.Equal(t, dto.LoginResponse{
		AccessToken: "signed-token",
		TokenType:   "Bearer",
		ExpiresIn:   7200,
		ExpiresAt:   expiresAt,
	}, response)
}

func TestCredentials_Empty(t *testing.T) {
	assert.True(t, dto.Credentials{}.Empty())
	assert.False(t, dto.Credentials{Secret: "s"}.Empty())
	assert.False(t, dto.Credentials{Token: "t"}.Empty())
}
