// Package server exposes the analysis, layout and export pipeline over HTTP.
//
// Routes:
//
//	POST /v1/analyze  {"diagram": {...}, "options": {...}} → analysis report
//	POST /v1/layout   {"diagram": {...}, "options": {...}} → positioned diagram
//	POST /v1/export   {"diagram": {...}, "format": "svg", "options": {...}} → artifact bytes
//	GET  /v1/kinds    supported analyses, algorithms, formats and shape kinds
//	GET  /healthz     liveness and build information
//
// Failures are JSON objects carrying the error code from package errors.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/diagramkit/pkg/pipeline"
)

// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
const ShutdownTimeout = 10 * time.Second

// Config holds the limits applied to every request.
type Config struct {
	// Timeout bounds each pipeline stage. Zero disables the limit.
	Timeout time.Duration
	// MaxShapes rejects larger diagrams. Zero disables the limit.
	MaxShapes int
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64
	// Defaults seeds the options of every request.
	Defaults pipeline.Options
}

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/kinds", s.handleKinds)

		r.Group(func(r chi.Router) {
			if s.cfg.MaxBodyBytes > 0 {
				r.Use(middleware.RequestSize(s.cfg.MaxBodyBytes))
			}
			r.Use(middleware.AllowContentType("application/json"))
			r.Post("/analyze", s.handleAnalyze)
			r.Post("/layout", s.handleLayout)
			r.Post("/export", s.handleExport)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound(r.URL.Path))
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != http.ErrServerClosed {
		return err
	}
	return nil
}

// options merges request options over the configured defaults and applies
// the server limits.
func (s *Server) options(req pipeline.Options) pipeline.Options {
	d := s.cfg.Defaults
	if req.Analysis == "" {
		req.Analysis = d.Analysis
	}
	if req.Reachability == "" {
		req.Reachability = d.Reachability
	}
	if req.MaxPaths == 0 {
		req.MaxPaths = d.MaxPaths
	}
	if req.MaxCycles == 0 {
		req.MaxCycles = d.MaxCycles
	}
	if req.Algorithm == "" {
		req.Algorithm = d.Algorithm
	}
	req.Layout = req.Layout.Merge(d.Layout)
	if len(req.Formats) == 0 {
		req.Formats = d.Formats
	}
	if req.Styles == nil {
		req.Styles = d.Styles
	}
	req.MaxShapes = s.cfg.MaxShapes
	req.Timeout = s.cfg.Timeout
	req.Logger = s.logger
	return req
}
