package types

// Telemetry metric names for CloudWatch.
const (
	// Metric Names
	MetricRelayOutcome = "RelayOutcome"
	MetricRelayLatency = "RelayLatency"

	// Dimension Keys
	DimResult = "Result"

	// DefaultMetricNamespace is used when no namespace is configured.
	DefaultMetricNamespace = "TechWave"
)
