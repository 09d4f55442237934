// Package server exposes the chart pipeline over HTTP.
//
// Routes:
//
//	GET  /health        liveness probe
//	POST /api/render    render a JSON item tree, format and options in the query
//	POST /api/tooltip   hit-test a pixel of the chart the same request would render
//
// Every render response carries the run ID in the X-Render-ID header.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// MaxBodyBytes caps the size of a request body.
const MaxBodyBytes = 4 << 20

// KeyPrefix scopes API cache entries apart from CLI entries.
const KeyPrefix = "api:"

// Server is the HTTP API server for sunburst.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	log      *log.Logger
	defaults pipeline.Options
}

// New creates and configures the HTTP server. Defaults seed the options of
// every request before query parameters are applied.
func New(c cache.Cache, logger *log.Logger, defaults pipeline.Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	runner := pipeline.NewRunner(c, cache.NewScopedKeyer(cache.NewDefaultKeyer(), KeyPrefix), logger)
	s := &Server{
		runner:   runner,
		log:      logger,
		defaults: defaults,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases the runner's cache.
func (s *Server) Close() error {
	return s.runner.Close()
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/tooltip", s.handleToolTip)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
