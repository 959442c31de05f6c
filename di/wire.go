//go:build wireinject
// +build wireinject

package di

import (
	"villa/config"
	"villa/infras/brevo"
	"villa/infras/jwt"
	"villa/infras/kafka"
	"villa/infras/mpesa"
	"villa/infras/otel"
	"villa/infras/paystack"
	"villa/infras/redis"
	"villa/permissions"
	"villa/shared/cache"
	"villa/transport/http"
	"villa/transport/http/middleware"
	"villa/transport/http/router"

	"github.com/google/wire"

	authService "villa/internal/domains/auth/service"
	bookingRepository "villa/internal/domains/booking/repository"
	bookingService "villa/internal/domains/booking/service"
	notificationService "villa/internal/domains/notification/service"
	paymentService "villa/internal/domains/payment/service"
	pricingService "villa/internal/domains/pricing/service"
	authHandler "villa/internal/handlers/auth"
	bookingHandler "villa/internal/handlers/booking"
	paymentHandler "villa/internal/handlers/payment"
	pricingHandler "villa/internal/handlers/pricing"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	mpesa.New,
	paystack.New,
	brevo.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	pricingService.New,
	paymentService.New,
	notificationService.New,
	authService.New,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	pricingHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
