package router

import (
	"peakpath/internal/handlers/auth"
	"peakpath/internal/handlers/booking"
	"peakpath/internal/handlers/health"
	"peakpath/internal/handlers/photo"
	"peakpath/internal/handlers/tour"
	"peakpath/internal/handlers/tourinstance"
	"peakpath/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Health       health.Handler
	Auth         auth.Handler
	User         user.Handler
	Tour         tour.Handler
	TourInstance tourinstance.Handler
	Booking      booking.Handler
	Photo        photo.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Tour.Router(routerGroup)
		r.DomainHandlers.TourInstance.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Photo.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
