// Package api serves chart readings and daily lines over HTTP.
// Reading endpoints are public and rate limited; history requires the
// admin bearer token.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/talgya/star-omens/internal/engine"
	"github.com/talgya/star-omens/internal/metrics"
	"github.com/talgya/star-omens/internal/persistence"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

// Server wires the engine into HTTP handlers.
type Server struct {
	Engine      *engine.Engine
	DB          *persistence.DB  // optional
	Metrics     *metrics.Metrics // optional
	Limiter     *RateLimiter     // optional
	CORSOrigins []string
	AdminKey    string // Bearer token for history. Empty = history disabled.
	Templates   int    // size of the loaded omen catalog, for status
	CacheSize   func() int

	started  time.Time
	validate *validator.Validate
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	s.started = time.Now()
	s.validate = validator.New()

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.observe)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)

		r.Group(func(r chi.Router) {
			if s.Limiter != nil {
				r.Use(s.Limiter.Middleware)
			}
			r.Post("/chart", s.handleChart)
			r.Post("/daily", s.handleDaily)
		})

		r.With(s.adminOnly).Get("/history/{userKey}", s.handleHistory)
	})
	return r
}

// observe logs and measures every request by its route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		if s.Metrics != nil {
			s.Metrics.ObserveRequest(route, status, elapsed)
		}
		slog.Debug("http request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly requires the bearer token.
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			writeError(w, http.StatusForbidden, "admin endpoints disabled (no OMENS_ADMIN_KEY set)")
			return
		}
		if !s.checkBearerToken(r) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
