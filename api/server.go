/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard frontend

ROUTE GROUPS:
  /api/summary     Summary metrics
  /api/revenue/*   Revenue tables
  /api/reviews/*   Review tables

SECURITY NOTE:
  No authentication middleware. The server exposes read-only aggregates
  over a local dataset; front it with a gateway before exposing beyond
  localhost.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", h.GetSummary)

		r.Route("/revenue", func(r chi.Router) {
			r.Get("/monthly", h.GetMonthlyRevenue)
			r.Get("/growth", h.GetMonthlyGrowth)
			r.Get("/categories", h.GetCategoryRevenue)
			r.Get("/states", h.GetStateRevenue)
			r.Get("/status", h.GetStatusRevenue)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/distribution", h.GetReviewDistribution)
			r.Get("/delivery", h.GetDeliveryScores)
		})
	})

	return r
}
