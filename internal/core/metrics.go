package core

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusCollector implements MetricsCollector and MetricsExporter on a
// dedicated registry.
type PrometheusCollector struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusCollector registers the API request metrics on registry.
func NewPrometheusCollector(registry *prometheus.Registry) *PrometheusCollector {
	c := &PrometheusCollector{
		registry: registry,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techwave_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "techwave_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "endpoint", "status"},
		),
	}
	registry.MustRegister(c.requests, c.duration)
	return c
}

// RecordRequest implements MetricsCollector.
func (c *PrometheusCollector) RecordRequest(method, endpoint, status string, duration time.Duration) {
	c.requests.WithLabelValues(method, endpoint, status).Inc()
	c.duration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// Handler implements MetricsExporter.
func (c *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
