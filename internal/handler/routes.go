package handler

import (
	"log/slog"
	"net/http"

	"github.com/Shivanand-hulikatti/activity-board/internal/view"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the router with the global middleware stack.
func NewRouter(h *BoardHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(logger))
	r.Use(CORS)

	r.Get("/health", HealthCheck)

	r.Get("/", h.Page)
	r.Get("/board", h.State)
	r.Post(view.SignupAction, h.Signup)
	r.Post(view.UnregisterAction, h.Unregister)
	r.Post(view.RefreshAction, h.Refresh)

	return r
}
