/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. requestLog: Structured request logging via zerolog
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/staff/*            Staff management
  /api/shift-templates/*  Template management
  /api/roster/*           Roster entries and assignment
  /api/settings           Rate table
  /metrics                Prometheus (when enabled)

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/warp/roster-engine/metrics"
)

// RouterOptions tunes the router per deployment.
type RouterOptions struct {
	AllowOrigins  []string
	EnableMetrics bool
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLog(h.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Staff routes
		r.Route("/staff", func(r chi.Router) {
			r.Get("/", h.ListStaff)
			r.Post("/", h.CreateStaff)
			r.Put("/{id}", h.UpdateStaff)
			r.Delete("/{id}", h.DeactivateStaff)
		})

		// Template routes
		r.Route("/shift-templates", func(r chi.Router) {
			r.Get("/", h.ListTemplates)
			r.Post("/", h.CreateTemplate)
			r.Put("/{id}", h.UpdateTemplate)
			r.Delete("/{id}", h.DeleteTemplate)
		})

		// Roster routes
		r.Route("/roster", func(r chi.Router) {
			r.Get("/", h.GetRoster)
			r.Post("/", h.CreateShift)
			r.Put("/{id}", h.UpdateShift)
			r.Delete("/{id}", h.DeleteShift)
			r.Post("/{id}/assign", h.AssignShift)
			r.Delete("/month/{month}", h.DeleteMonth)
		})

		r.Post("/generate-roster/{month}", h.GenerateRoster)
		r.Get("/roster-window/{month}", h.GetWindow)
		r.Get("/export/{month}", h.Export)

		// Settings routes
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)
	})

	if opts.EnableMetrics {
		metrics.Register()
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// requestLog emits one structured line per request.
func requestLog(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
