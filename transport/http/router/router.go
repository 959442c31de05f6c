package router

import (
	"villa/internal/handlers/auth"
	"villa/internal/handlers/booking"
	"villa/internal/handlers/payment"
	"villa/internal/handlers/pricing"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Booking booking.Handler
	Pricing pricing.Handler
	Payment payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Auth.Router(router)
	r.DomainHandlers.Booking.Router(router)
	r.DomainHandlers.Pricing.Router(router)
	r.DomainHandlers.Payment.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
