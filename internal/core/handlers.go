package core

import (
	"log/slog"
	"net/http"

	"techwave/internal/types"
)

// HandleMetrics serves a freshly generated MetricsSample.
func (s *Server) HandleMetrics(w http.ResponseWriter, r *http.Request) error {
	sample := s.Sampler.Sample()
	s.Logger.InfoContext(r.Context(), "Metrics requested", slog.Any("metrics", sample))
	return JSON(w, http.StatusOK, sample)
}

// HandleAlert logs the posted alert verbatim and acknowledges it. The body is
// neither validated nor stored.
func (s *Server) HandleAlert(w http.ResponseWriter, r *http.Request) error {
	s.Logger.WarnContext(r.Context(), "Alert received", slog.Any("alert", types.GetBody(r.Context())))
	return JSON(w, http.StatusOK, types.AlertAck{
		Status:    types.StatusAlertReceived,
		Timestamp: types.FormatTimestamp(s.now()),
	})
}
