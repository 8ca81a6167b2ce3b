package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/user/recover", h.recoverPassword)
	})

	// routes behind JWT auth and the session guard
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/user/logout", h.logout)

		r.Post("/api/vault", h.createItem)
		r.Get("/api/vault", h.listItems)
		r.Get("/api/vault/{id}", h.getItem)
		r.Put("/api/vault/{id}", h.updateItem)
		r.Delete("/api/vault/{id}", h.deleteItem)

		r.Post("/api/disclosure", h.issueToken)
		r.Post("/api/vault/{id}/reveal", h.reveal)

		r.Get("/api/notifications", h.listNotifications)
		r.Post("/api/notifications/read", h.markNotificationsRead)

		r.Post("/api/password/generate", h.generatePassword)
	})

	router.Handle("/metrics", promhttp.Handler())

	return router
}
