package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"techwave/internal/types"
)

// DefaultSubject is the SNS subject used when none is configured.
const DefaultSubject = "Message Processed"

// SNSAPI abstracts the SNS Publish operation for testability.
// Production code uses the *sns.Client from aws-sdk-go-v2.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes ProcessedMessages to a single SNS topic. The topic
// ARN is fixed at construction.
type SNSPublisher struct {
	client   SNSAPI
	topicARN string
	subject  string
	logger   *slog.Logger
}

// NewSNSPublisher creates an SNSPublisher for topicARN. An empty subject
// falls back to DefaultSubject.
func NewSNSPublisher(client SNSAPI, topicARN, subject string, logger *slog.Logger) *SNSPublisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &SNSPublisher{
		client:   client,
		topicARN: topicARN,
		subject:  subject,
		logger:   logger,
	}
}

// Publish serializes msg to JSON and awaits the SNS Publish call.
func (p *SNSPublisher) Publish(ctx context.Context, msg types.ProcessedMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("sns publisher: marshal message: %w", err)
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(p.subject),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("sns publisher: publish to %s: %w", p.topicARN, err)
	}

	var messageID string
	if out != nil {
		messageID = aws.ToString(out.MessageId)
	}
	p.logger.Info("message published",
		"topic_arn", p.topicARN,
		"sns_message_id", messageID,
	)
	return nil
}
