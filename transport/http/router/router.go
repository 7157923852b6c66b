package router

import (
	"hotelres/internal/handlers/auth"
	"hotelres/internal/handlers/catalog"
	"hotelres/internal/handlers/checkout"
	"hotelres/internal/handlers/payment"
	"hotelres/internal/handlers/receipt"
	"hotelres/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Catalog  catalog.Handler
	Auth     auth.Handler
	Payment  payment.Handler
	Checkout checkout.Handler
	Receipt  receipt.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Session        middleware.Session
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Receipt.Router(routerGroup)

		// Checkouts follow the session of every request.
		routerGroup.Group(func(sessionGroup chi.Router) {
			sessionGroup.Use(r.Session.Session)
			r.DomainHandlers.Checkout.Router(sessionGroup)
		})
	})
}

func New(domainHandlers DomainHandlers, session middleware.Session) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Session:        session,
	}
}
