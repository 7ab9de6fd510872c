/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging through logrus
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the calendar frontend

ROUTE GROUPS:
  /api/shifts/*         Shift assignments
  /api/settings         Settings singleton (and /shift/{type} retiming)
  /api/summary/*        Computed hour totals
  /api/holidays/*       Public holidays
  /api/scenarios/*      Demo scenarios
  /                     Endpoint index

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
	"github.com/sirupsen/logrus"
)

// DefaultAllowedOrigins are the dev frontend origins.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:5000"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, logger *logrus.Logger, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Shift routes
		r.Route("/shifts", func(r chi.Router) {
			r.Post("/", h.UpsertShift)
			r.Get("/date/{date}", h.GetShiftByDate)
			r.Delete("/date/{date}", h.DeleteShiftByDate)
			r.Get("/{year}/{month}", h.ListMonthShifts)
		})

		// Settings routes
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)
		r.Put("/settings/shift/{type}", h.UpdateShiftTime)

		// Summary routes
		r.Route("/summary", func(r chi.Router) {
			r.Get("/week/{date}", h.GetWeekSummary)
			r.Get("/month/{year}/{month}", h.GetMonthSummary)
			r.Get("/year/{year}", h.GetYearSummary)
		})

		// Holiday routes
		r.Get("/holidays/{year}", h.ListHolidays)

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Shift Calendar</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Shift Calendar API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/settings">/api/settings</a> - Current settings</li>
<li><a href="/api/scenarios">/api/scenarios</a> - List scenarios</li>
<li>/api/shifts/{year}/{month} - Shifts of a month</li>
<li>/api/summary/week/{date} - Hours of the week containing date</li>
<li>/api/summary/year/{year} - Statistics dashboard</li>
<li>/api/holidays/{year} - Public holidays</li>
</ul>
</body>
</html>`))
	})

	return r
}
