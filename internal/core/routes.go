package core

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fairweather/internal/types"
)

// defaultRequestTimeout stays under the API Gateway integration timeout.
const defaultRequestTimeout = 29 * time.Second

const requestIDHeader = "X-Request-Id"

var defaultRedactedHeaders = []string{
	"Authorization",
	"Cookie",
	"X-Api-Key",
}

// MountRoutes registers the middleware chain, the /v1 group and /health.
func (s *Server) MountRoutes() {
	s.router.Use(s.Recoverer)
	s.router.Use(ContextTimeoutMiddleware(defaultRequestTimeout))
	s.router.Use(RequestIDMiddleware)
	s.router.Use(s.SecurityHeadersMiddleware)
	s.router.Use(RequestLogger(s.Logger, defaultRedactedHeaders))
	s.router.Use(NewCORSMiddleware(s.corsAllowedOrigins()))
	s.router.Use(s.MetricsMiddleware)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		Error(w, r, types.NewAppError(errCodeNotFoundRoute, "no such endpoint", nil))
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		Error(w, r, types.NewAppError(errCodeValidationMethod, "method not allowed for this endpoint", nil))
	})

	s.router.Get("/health", s.HandleHealth)
	s.router.Route("/v1", func(r chi.Router) {
		for _, register := range s.V1RouteRegistrars {
			register(r)
		}
	})
}

func (s *Server) corsAllowedOrigins() []string {
	if s.Config != nil && len(s.Config.Server.CorsAllowedOrigins) > 0 {
		return s.Config.Server.CorsAllowedOrigins
	}
	return []string{"*"}
}

// MaxBodyBytes returns the configured request body limit.
func (s *Server) MaxBodyBytes() int64 {
	if s.Config != nil && s.Config.Server.MaxBodyBytes > 0 {
		return s.Config.Server.MaxBodyBytes
	}
	return defaultMaxBodyBytes
}

// ContextTimeoutMiddleware puts a deadline on the request context.
func ContextTimeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDMiddleware propagates the caller's X-Request-Id or assigns a new
// UUID, stores it in the context and echoes it on the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(types.WithRequestID(r.Context(), id)))
	})
}
