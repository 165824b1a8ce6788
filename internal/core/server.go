// Package core provides the HTTP chassis of the TechWave API. It builds a chi
// router, applies the cross-cutting middleware (access logging, panic
// recovery, request IDs, CORS, request metrics, JSON body parsing) and mounts
// the metrics, alert and health handlers.
package core

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"techwave/internal/config"
	"techwave/internal/sysmetrics"
)

// MetricsCollector records API request telemetry.
type MetricsCollector interface {
	// RecordRequest records one completed request. endpoint is the matched
	// route pattern, not the raw path.
	RecordRequest(method, endpoint, status string, duration time.Duration)
}

// Server holds the dependencies of the API. The logger is shared by every
// request and is never recreated per request.
type Server struct {
	Config  *config.Config
	Logger  *slog.Logger
	Sampler sysmetrics.Sampler

	// Metrics is optional; a nil collector disables request metrics. When the
	// collector also implements MetricsExporter, its handler is mounted on
	// GET /metrics.
	Metrics MetricsCollector

	// AccessLog receives one combined-format line per request.
	AccessLog io.Writer

	now    func() time.Time
	router *chi.Mux
}

// MetricsExporter exposes collected metrics over HTTP.
type MetricsExporter interface {
	Handler() http.Handler
}

// NewServer validates its dependencies and prepares an empty router. Callers
// mount routes with MountRoutes once optional fields are set.
func NewServer(cfg *config.Config, logger *slog.Logger, sampler sysmetrics.Sampler) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if sampler == nil {
		return nil, fmt.Errorf("sampler must not be nil")
	}

	return &Server{
		Config:    cfg,
		Logger:    logger,
		Sampler:   sampler,
		AccessLog: os.Stdout,
		now:       time.Now,
		router:    chi.NewRouter(),
	}, nil
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the underlying chi.Mux.
func (s *Server) Router() *chi.Mux {
	return s.router
}
