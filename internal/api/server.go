// Package api implements the Causeway HTTP API.
//
// The API exposes the layout pipeline over HTTP: one-shot layout of
// documents posted in request bodies, plus CRUD over stored diagrams
// with per-diagram layout and render endpoints. All handlers answer
// JSON except render, which answers the artifact's own content type.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/causelab/causeway/pkg/pipeline"
	"github.com/causelab/causeway/pkg/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8480"

const shutdownTimeout = 10 * time.Second

// Config holds the server's collaborators. Runner is required; a nil
// Store disables the /v1/diagrams routes with 503 responses rather
// than failing startup, so a cache-only deployment still serves
// one-shot layouts.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger
}

// Server is the Causeway HTTP API server.
type Server struct {
	addr   string
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// NewServer builds a server and its route table.
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &Server{
		addr:   cfg.Addr,
		runner: cfg.Runner,
		store:  cfg.Store,
		logger: cfg.Logger,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the server's handler for mounting or testing.
func (s *Server) Router() http.Handler { return s.router }

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)

		r.Route("/diagrams", func(r chi.Router) {
			r.Use(s.requireStore)
			r.Post("/", s.handleCreateDiagram)
			r.Get("/", s.handleListDiagrams)
			r.Route("/{diagramID}", func(r chi.Router) {
				r.Get("/", s.handleGetDiagram)
				r.Delete("/", s.handleDeleteDiagram)
				r.Get("/layout", s.handleDiagramLayout)
				r.Get("/render", s.handleDiagramRender)
			})
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
