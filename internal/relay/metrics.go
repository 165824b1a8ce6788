package relay

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"techwave/internal/types"
)

// Result is the outcome dimension of a relay invocation.
type Result string

const (
	ResultProcessed Result = "processed"
	ResultFailed    Result = "failed"
)

// Metrics records relay telemetry. Implementations must not fail the
// invocation.
type Metrics interface {
	RecordOutcome(ctx context.Context, result Result)
	RecordLatency(ctx context.Context, d time.Duration)
}

// NoopMetrics discards all measurements.
type NoopMetrics struct{}

func (NoopMetrics) RecordOutcome(context.Context, Result)        {}
func (NoopMetrics) RecordLatency(context.Context, time.Duration) {}

// CloudWatchClient abstracts the CloudWatch PutMetricData operation for testability.
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

var _ Metrics = (*CloudWatchMetrics)(nil)

// CloudWatchMetrics emits relay metrics to CloudWatch on a best-effort
// basis: PutMetricData failures are logged and swallowed.
//
// Metrics emitted:
//   - RelayOutcome: Dims {Result} -- once per invocation
//   - RelayLatency: No dims -- parse and publish time of successful invocations
type CloudWatchMetrics struct {
	client    CloudWatchClient
	namespace string
	logger    *slog.Logger
}

// NewCloudWatchMetrics creates a CloudWatchMetrics publishing to namespace.
func NewCloudWatchMetrics(client CloudWatchClient, namespace string, logger *slog.Logger) *CloudWatchMetrics {
	if namespace == "" {
		namespace = types.DefaultMetricNamespace
	}
	return &CloudWatchMetrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// RecordOutcome emits a RelayOutcome count with the Result dimension.
func (m *CloudWatchMetrics) RecordOutcome(ctx context.Context, result Result) {
	m.put(ctx, cwtypes.MetricDatum{
		MetricName: aws.String(types.MetricRelayOutcome),
		Value:      aws.Float64(1),
		Unit:       cwtypes.StandardUnitCount,
		Dimensions: []cwtypes.Dimension{
			{
				Name:  aws.String(types.DimResult),
				Value: aws.String(string(result)),
			},
		},
	})
}

// RecordLatency emits the invocation latency in milliseconds.
func (m *CloudWatchMetrics) RecordLatency(ctx context.Context, d time.Duration) {
	m.put(ctx, cwtypes.MetricDatum{
		MetricName: aws.String(types.MetricRelayLatency),
		Value:      aws.Float64(float64(d.Milliseconds())),
		Unit:       cwtypes.StandardUnitMilliseconds,
	})
}

func (m *CloudWatchMetrics) put(ctx context.Context, datum cwtypes.MetricDatum) {
	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: []cwtypes.MetricDatum{datum},
	}
	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Error("failed to record relay metric",
			"error", err.Error(),
			"metric", aws.ToString(datum.MetricName),
		)
	}
}
