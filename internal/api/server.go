// Package api provides the HTTP server for the extension backend: the
// platform webhook sink, the config and session endpoints consumed by the
// extension UI, and debug/cron triggers.
package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linkvote-app/linkvote/internal/app/events"
	"github.com/linkvote-app/linkvote/internal/app/lockops"
	"github.com/linkvote-app/linkvote/internal/app/reset"
	"github.com/linkvote-app/linkvote/internal/health"
	"github.com/linkvote-app/linkvote/internal/infra/chaster"
	"github.com/linkvote-app/linkvote/internal/infra/journal"
)

// Server is the extension backend's HTTP API server.
type Server struct {
	client     chaster.Client
	dispatcher *events.Dispatcher
	gateway    *lockops.Gateway
	resetJob   *reset.Job

	journal        *journal.DB     // nil when the journal is disabled
	health         *health.Checker // nil when running without background checks
	metricsEnabled bool
	corsOrigins    []string
	basicUser      string
	basicPass      string
}

// NewServer creates an API server over the injected collaborators.
func NewServer(client chaster.Client, dispatcher *events.Dispatcher, gateway *lockops.Gateway, resetJob *reset.Job) *Server {
	return &Server{
		client:     client,
		dispatcher: dispatcher,
		gateway:    gateway,
		resetJob:   resetJob,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetJournal attaches the webhook delivery journal.
func (s *Server) SetJournal(j *journal.DB) { s.journal = j }

// SetHealth attaches the background health checker.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// SetCORSOrigins restricts CORS to the given origins. Empty allows any.
func (s *Server) SetCORSOrigins(origins []string) { s.corsOrigins = origins }

// SetBasicAuth guards the debug and cron routes with the given credentials.
// Empty credentials leave them open.
func (s *Server) SetBasicAuth(user, pass string) {
	s.basicUser, s.basicPass = user, pass
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Post("/api/webhooks", s.handleWebhook)

	r.Route("/api/config", func(r chi.Router) {
		r.Get("/{configToken}", s.handleGetConfig)
		r.Put("/{configToken}", s.handleSetConfig)
	})

	r.Route("/api/session", func(r chi.Router) {
		r.Get("/{mainToken}", s.handleGetSession)
		r.Patch("/{mainToken}", s.handlePatchSession)
	})

	r.Post("/api/lock/togglefreeze", s.handleToggleFreeze)

	// Guarded operator routes
	r.Group(func(r chi.Router) {
		r.Use(s.basicAuth)
		r.Post("/api/debug", s.handleDebug)
		r.Get("/api/debug/events", s.handleDebugEvents)
		r.Get("/cron/reset-daily-votes", s.handleResetTrigger)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// handleHealth reports overall status plus per-check detail when the
// background checker is attached.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	status := "ok"
	code := http.StatusOK
	if !s.health.IsHealthy() {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{
		"status": status,
		"checks": s.health.Statuses(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}

// corsMiddleware allows the extension UI origins to call the API.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := "*"
		if len(s.corsOrigins) > 0 {
			origin = ""
			for _, o := range s.corsOrigins {
				if o == r.Header.Get("Origin") {
					origin = o
					break
				}
			}
		}
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// basicAuth guards a route group when credentials are configured.
func (s *Server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.basicUser == "" && s.basicPass == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(s.basicUser)) != 1 ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(s.basicPass)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="linkvote"`)
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		next.ServeHTTP(w, r)
	})
}
