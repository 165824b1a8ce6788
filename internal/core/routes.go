package core

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers the global middleware chain and every route.
func (s *Server) MountRoutes() {
	s.registerGlobalMiddleware()

	// Body parsing is attached per route so it only runs once a route has
	// fully matched.
	s.router.Route("/api", func(r chi.Router) {
		r.With(s.JSONBody).Get("/metrics", s.Handle(s.HandleMetrics))
		r.With(s.JSONBody).Post("/alert", s.Handle(s.HandleAlert))
	})

	s.router.With(s.JSONBody).Get("/health", s.Handle(s.HandleHealth))

	if exp, ok := s.Metrics.(MetricsExporter); ok && s.metricsEnabled() {
		s.router.Method(http.MethodGet, "/metrics", exp.Handler())
	}
}

// registerGlobalMiddleware applies middleware in strict order.
//
//  1. AccessLog   - outermost, so the line reflects the final status,
//     including 500s written by the Recoverer.
//  2. Metrics     - request count and latency by route pattern; outside
//     the Recoverer so recovered panics are counted as 500s.
//  3. Recoverer   - turns panics into the fallback 500 response.
//  4. RequestID   - correlation ID for error logs.
//  5. CORS        - permissive cross-origin headers and preflight.
//
// JSONBody is applied per route in MountRoutes.
func (s *Server) registerGlobalMiddleware() {
	s.router.Use(AccessLogMiddleware(s.AccessLog))
	s.router.Use(s.MetricsMiddleware)
	s.router.Use(s.Recoverer)
	s.router.Use(RequestIDMiddleware)
	s.router.Use(NewCORSMiddleware(s.corsAllowedOrigins()))
}

func (s *Server) corsAllowedOrigins() []string {
	if s.Config != nil && len(s.Config.Security.CorsAllowedOrigins) > 0 {
		return s.Config.Security.CorsAllowedOrigins
	}
	return []string{"*"}
}

func (s *Server) maxBodyBytes() int64 {
	if s.Config != nil && s.Config.Server.MaxBodyBytes > 0 {
		return s.Config.Server.MaxBodyBytes
	}
	return defaultMaxBodyBytes
}

func (s *Server) metricsEnabled() bool {
	return s.Config == nil || s.Config.Server.MetricsEnabled
}
