package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers the HTTP routes and middleware stack.
// Centralizing routes here ensures consistent auth and error behavior across endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/auth/v1", func(r chi.Router) {
		r.Post("/login", handler.login)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/setup", handler.setup)

		r.Get("/tracking/{trackingNumber}", handler.publicTracking)

		r.Route("/shipments", func(r chi.Router) {
			// Chat is readable and writable by the tracked customer,
			// so the principal is resolved but never required here.
			r.Group(func(r chi.Router) {
				r.Use(handler.optionalAuthMiddleware)
				r.Get("/{id}/messages", handler.listMessages)
				r.Post("/{id}/messages", handler.postMessage)
			})

			r.Group(func(r chi.Router) {
				r.Use(handler.authMiddleware)
				r.Post("/", handler.createShipment)
				r.Get("/", handler.listShipments)
				r.Get("/{id}", handler.getShipment)
				r.Put("/{id}", handler.updateShipment)
				r.Delete("/{id}", handler.deleteShipment)

				r.Post("/{id}/events", handler.createEvent)
				r.Get("/{id}/events", handler.listEvents)
				r.Put("/{id}/events/{eventId}", handler.updateEvent)

				r.Post("/{id}/messages/read", handler.markMessagesRead)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Get("/stats", handler.dashboardStats)
			r.Get("/inquiries", handler.dashboardInquiries)
		})

		r.Route("/admins", func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Post("/", handler.createAdmin)
			r.Get("/", handler.listAdmins)
		})
	})

	return r
}
