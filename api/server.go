/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontends

ROUTE GROUPS:
  /api/persons/*       Day evaluation, request records, balances
  /api/workflows/*     Workflow status
  /api/intervals/*     Interval algebra
  /api/entitlements/*  Carry-over calculator
  /api/round           Rounding

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured. allowedOrigins
// defaults to the local development frontends when empty.
func NewRouter(h *Handler, allowedOrigins ...string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/persons/{id}", func(r chi.Router) {
			r.Route("/days/{date}", func(r chi.Router) {
				r.Get("/", h.GetDay)
				r.Get("/hourly-holidays", h.GetHourlyHolidays)
				r.Put("/schedule", h.PutSchedule)
			})
			r.Post("/requests", h.CreateRequest)
			r.Put("/balances/{code}", h.PutBalance)
			r.Get("/balances/{code}/remains", h.GetBalanceRemains)
		})

		r.Put("/workflows/{id}", h.PutWorkflow)
		r.Post("/intervals/{op}", h.IntervalOp)
		r.Post("/entitlements/remains", h.Remains)
		r.Post("/round", h.Round)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
