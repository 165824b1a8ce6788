package types

import "time"

// TimestampLayout renders instants in UTC with millisecond precision and a
// literal Z suffix, e.g. 2026-10-15T08:30:00.125Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Response status values.
const (
	StatusHealthy       = "healthy"
	StatusAlertReceived = "Alert received"
)

// MsgInternalServerError is the only error text ever shown to API clients.
const MsgInternalServerError = "Internal server error"

// MetricsSample is a synthetic host utilisation reading. Each field is a
// percentage in [0, 100).
type MetricsSample struct {
	CPU    int `json:"cpu"`
	Memory int `json:"memory"`
	Disk   int `json:"disk"`
}

// AlertAck acknowledges an alert posted to the service.
type AlertAck struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HealthStatus is the liveness response body.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the opaque body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
