package core

import (
	"net/http"

	"techwave/internal/types"
)

// HandleHealth reports liveness. It consults no dependency and always
// answers 200 while the process is serving.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) error {
	return JSON(w, http.StatusOK, types.HealthStatus{
		Status:    types.StatusHealthy,
		Timestamp: types.FormatTimestamp(s.now()),
	})
}
