package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"villa/config"
	"villa/infras/jwt"
	"villa/infras/otel"
	"villa/internal/domains/auth/model/dto"
	"villa/shared/constant"
	"villa/shared/failure"
	"villa/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	adminSubject = "operator"

	MessageInvalidSecret = "Unauthorized: Invalid Admin Secret"
)

// Auth decides whether a caller is the property operator.
type Auth interface {
	// IsAdmin never errors: bad or missing credentials simply mean "not admin".
	IsAdmin(ctx context.Context, credentials dto.Credentials) bool
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type serviceImpl struct {
	secretHash string
	jwtService jwt.JWT
	otel       otel.Otel
}

// New hashes the configured admin secret once. An empty secret disables
// every admin path.
func New(cfg *config.Config, jwt jwt.JWT, otel otel.Otel) Auth {
	s := &serviceImpl{
		jwtService: jwt,
		otel:       otel,
	}

	if cfg.App.Admin.Secret == "" {
		log.Warn().Msg("admin secret is not configured, admin endpoints are disabled")

		return s
	}

	hash, err := password.Hash(cfg.App.Admin.Secret)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash admin secret, admin endpoints are disabled")

		return s
	}

	s.secretHash = hash

	return s
}

func (s *serviceImpl) IsAdmin(ctx context.Context, credentials dto.Credentials) bool {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAdmin")
	defer scope.End()

	if s.secretHash == "" || credentials.Empty() {
		return false
	}

	if credentials.Secret != "" {
		return s.verifySecret(credentials.Secret)
	}

	claims, err := s.jwtService.ValidateToken(credentials.Token)
	if err != nil {
		log.Debug().Err(err).Msg("rejected admin session token")

		return false
	}

	return claims.Role == constant.RoleAdmin
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	if s.secretHash == "" || !s.verifySecret(req.Secret) {
		log.Warn().Msg("admin login attempt with invalid secret")

		return res, failure.Unauthorized(MessageInvalidSecret)
	}

	token, err := s.jwtService.GenerateToken(adminSubject, constant.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate admin session token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.FromToken(token)

	return res, nil
}

func (s *serviceImpl) verifySecret(secret string) bool {
	if err := password.Verify(secret, s.secretHash); err != nil {
		log.Debug().Err(err).Msg("admin secret mismatch")

		return false
	}

	return true
}
