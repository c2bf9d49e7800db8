// Package server exposes the layout pipeline over HTTP.
//
// The API is a thin JSON shell around [pipeline.Runner]: clients POST a
// component set and receive the positioned node/edge graph; position
// overrides are read and written per project through the injected store.
//
// # Endpoints
//
//	POST   /api/v1/layout               compute a layout
//	GET    /api/v1/positions/{project}  read saved positions
//	PUT    /api/v1/positions/{project}  replace saved positions
//	DELETE /api/v1/positions/{project}  discard saved positions
//	GET    /healthz                     liveness probe
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/archmap-dev/archmap/pkg/pipeline"
	"github.com/archmap-dev/archmap/pkg/store"
)

// Server hosts the layout API.
type Server struct {
	runner *pipeline.Runner
	store  store.PositionStore
	logger *log.Logger
	http   *http.Server
}

// New creates a server bound to addr.
func New(addr string, s store.PositionStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	srv := &Server{
		runner: pipeline.NewRunner(s, logger),
		store:  s,
		logger: logger,
	}
	srv.http = &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv
}

// Routes builds the chi router with all endpoints and middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Route("/positions/{project}", func(r chi.Router) {
			r.Get("/", s.handleGetPositions)
			r.Put("/", s.handlePutPositions)
			r.Delete("/", s.handleClearPositions)
		})
	})
	return r
}

// ListenAndServe runs the server until the context is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
