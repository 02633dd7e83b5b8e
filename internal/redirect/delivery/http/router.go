package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the redirect route and health probes. The wildcard keeps
// multi-segment slugs intact.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/go/*", handler.Redirect)
	r.Get("/go", handler.Redirect)

	r.Get("/healthz", handler.Healthz)
	r.Get("/readyz", handler.Readyz)

	return r
}
