/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Lightweight, context-based, RESTful route patterns.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/reports/*              The four statement documents
  /api/properties ... etc     Ledger record seeding
  /api/scenarios/*            Demo ledgers
  /api/reset                  Database reset (dev only)

SECURITY NOTE:
  No authentication middleware. Reports trust the owner query
  parameter; authorization is assumed to happen upstream of this
  service.

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
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
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
		// Statement routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/income-statement", h.GetIncomeStatement)
			r.Get("/balance-sheet", h.GetBalanceSheet)
			r.Get("/cash-flow", h.GetCashFlow)
			r.Get("/tax-documents", h.GetTaxDocuments)
		})

		// Ledger record routes (seeding)
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", h.ListProperties)
			r.Post("/", h.CreateProperty)
		})
		r.Post("/units", h.CreateUnit)
		r.Post("/leases", h.CreateLease)
		r.Post("/payments", h.CreateRentPayment)
		r.Post("/expenses", h.CreateExpense)
		r.Post("/maintenance-requests", h.CreateMaintenanceRequest)

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
		r.Post("/reset", h.ResetDatabase)
	})

	return r
}
