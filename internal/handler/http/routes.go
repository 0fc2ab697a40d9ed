package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router with every route and middleware of the API.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	if h.signer != nil {
		router.Use(h.withHashing)
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", h.register)
			r.Post("/auth/sign_in", h.signIn)
			r.Get("/auth/params", h.params)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/auth/ping", h.ping)
			r.Post("/auth/change_pw", h.changePassword)
			r.Post("/items/sync", h.sync)
		})
	})

	router.MethodNotAllowed(methodNotAllowed)
	router.NotFound(notFound)

	return router
}
