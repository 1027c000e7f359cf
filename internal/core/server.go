// Package core is the HTTP chassis for the Fairweather API: a chi router
// with the cross-cutting middleware (recovery, request IDs, logging, CORS,
// metrics) that runs before any handler. The same handler serves local HTTP
// and API Gateway Lambda invocations.
package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fairweather/internal/config"
)

// MetricsCollector records API request telemetry.
type MetricsCollector interface {
	RecordRequest(method, endpoint, status string, duration time.Duration)
}

// RouteRegistrar mounts a group of routes under /v1.
type RouteRegistrar func(r chi.Router)

// Server holds the API dependencies.
type Server struct {
	Config    *config.Config
	Logger    *slog.Logger
	Validator *Validator
	Metrics   MetricsCollector

	HealthProbes      []HealthProbe
	V1RouteRegistrars []RouteRegistrar

	// Closers are released on Shutdown (database pools and the like).
	Closers []io.Closer

	router *chi.Mux
}

// NewServer creates a Server. Routes are mounted separately with MountRoutes
// so tests can adjust registrars first.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	return &Server{
		Config:    cfg,
		Logger:    logger,
		Validator: NewValidator(),
		router:    chi.NewRouter(),
	}, nil
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router exposes the chi mux for route registration in tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Shutdown releases server resources.
func (s *Server) Shutdown(_ context.Context) error {
	s.Logger.Info("server shutdown initiated")
	var firstErr error
	for _, c := range s.Closers {
		if err := c.Close(); err != nil {
			s.Logger.Error("error closing server resource", "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("closing server resource: %w", err)
			}
		}
	}
	s.Logger.Info("server shutdown complete")
	return firstErr
}
