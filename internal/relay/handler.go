// Package relay implements the queue-to-notification relay: it consumes one
// SQS event, wraps the first record's JSON body in a ProcessedMessage and
// publishes it to an SNS topic.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"techwave/internal/types"
)

// ErrNoRecords is returned when the event carries no records.
var ErrNoRecords = errors.New("relay: event contains no records")

// Publisher delivers a ProcessedMessage to the notification topic.
type Publisher interface {
	Publish(ctx context.Context, msg types.ProcessedMessage) error
}

// Handler holds the dependencies of the relay Lambda. It is built once at
// cold start and reused across invocations.
type Handler struct {
	publisher Publisher
	metrics   Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewHandler creates a Handler. metrics may be nil.
func NewHandler(publisher Publisher, metrics Metrics, logger *slog.Logger) *Handler {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &Handler{
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Handle processes the first record of event. Any failure is logged and
// returned so the Lambda runtime applies the queue's redrive policy.
func (h *Handler) Handle(ctx context.Context, event events.SQSEvent) (types.RelayResponse, error) {
	start := h.now()

	resp, err := h.process(ctx, event)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error:", slog.Any("error", err))
		h.metrics.RecordOutcome(ctx, ResultFailed)
		return types.RelayResponse{}, err
	}

	h.metrics.RecordOutcome(ctx, ResultProcessed)
	h.metrics.RecordLatency(ctx, h.now().Sub(start))
	return resp, nil
}

func (h *Handler) process(ctx context.Context, event events.SQSEvent) (types.RelayResponse, error) {
	if len(event.Records) == 0 {
		return types.RelayResponse{}, ErrNoRecords
	}

	record := event.Records[0]
	if extra := len(event.Records) - 1; extra > 0 {
		h.logger.WarnContext(ctx, "ignoring additional records in event",
			"message_id", record.MessageId,
			"ignored_records", extra,
		)
	}

	var original json.RawMessage
	if err := json.Unmarshal([]byte(record.Body), &original); err != nil {
		return types.RelayResponse{}, fmt.Errorf("relay: parse message %s: %w", record.MessageId, err)
	}

	msg := types.ProcessedMessage{
		OriginalMessage: original,
		Timestamp:       types.FormatTimestamp(h.now()),
		Status:          types.StatusProcessed,
	}
	if err := h.publisher.Publish(ctx, msg); err != nil {
		return types.RelayResponse{}, fmt.Errorf("relay: publish message %s: %w", record.MessageId, err)
	}

	body, err := json.Marshal(types.RelayResult{Message: types.MsgRelaySuccess})
	if err != nil {
		return types.RelayResponse{}, fmt.Errorf("relay: encode response: %w", err)
	}
	return types.RelayResponse{StatusCode: 200, Body: string(body)}, nil
}
