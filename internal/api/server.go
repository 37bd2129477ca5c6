// Package api exposes the layout pipeline over HTTP.
//
// The API is a thin boundary around pipeline.Runner: it validates input
// shape, runs the pipeline, and maps coded errors to HTTP status codes. All
// layout semantics live in pkg/; nothing here touches positions directly.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/pipeline"
)

// Server hosts the HTTP API over a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates an API server. If logger is nil the default logger is
// used.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		logger: logger,
	}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/infer", s.handleInfer)
		r.Get("/strategies", s.handleStrategies)
	})

	return r
}

// logRequests logs one line per request after it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
