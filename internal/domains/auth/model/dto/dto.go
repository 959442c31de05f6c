package dto

import (
	"time"
	"villa/infras/jwt"
)

// Credentials are what a caller may present to act as the operator.
type Credentials struct {
	Secret string
	Token  string
}

// Empty reports whether no credential was presented.
func (c Credentials) Empty() bool {
	return c.Secret == "" && c.Token == ""
}

type LoginRequest struct {
	Secret string `json:"secret" validate:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresIn   int64     `json:"expiresIn"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (l *LoginResponse) FromToken(token *jwt.Token) {
	l.AccessToken = token.AccessToken
	l.TokenType = token.TokenType
	l.ExpiresIn = token.ExpiresIn
	l.ExpiresAt = token.ExpiresAt
}
