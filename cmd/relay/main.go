// Package main is the entrypoint for the Queue-to-Notification Relay Lambda.
//
// Cold Start (main):
//  1. Load configuration (SNS topic ARN is required).
//  2. Initialize the structured logger on stderr.
//  3. Load AWS SDK configuration, honouring AWS_ENDPOINT_URL for LocalStack.
//  4. Initialize the SNS publisher and, when enabled, CloudWatch metrics.
//  5. Register the handler and call lambda.Start.
//
// Each invocation processes the first record of the SQS event and publishes
// the wrapped message to SNS. Failures are returned to the runtime so the
// queue's redrive policy decides on retries.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"techwave/internal/config"
	"techwave/internal/logging"
	"techwave/internal/relay"
)

func main() {
	h, err := newHandler(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	lambda.Start(h.Handle)
}

// newHandler performs cold-start initialization.
func newHandler(ctx context.Context) (*relay.Handler, error) {
	cfg, err := config.LoadRelayConfig(config.NewSSMProvider(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	// Lambda ships stdout and stderr to CloudWatch Logs; no file sinks.
	logger, _, err := logging.New(logging.Options{
		Service: cfg.Service,
		Level:   cfg.LogLevel,
		Console: os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	logger.Info("Relay Lambda initializing (cold start)")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS SDK config: %w", err)
	}

	snsClient := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if cfg.AWS.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.EndpointURL)
		}
	})
	publisher := relay.NewSNSPublisher(snsClient, cfg.Notification.TopicARN, cfg.Notification.Subject, logger)

	var metrics relay.Metrics
	if cfg.Metrics.Enabled {
		cwClient := cloudwatch.NewFromConfig(awsCfg, func(o *cloudwatch.Options) {
			if cfg.AWS.EndpointURL != "" {
				o.BaseEndpoint = aws.String(cfg.AWS.EndpointURL)
			}
		})
		metrics = relay.NewCloudWatchMetrics(cwClient, cfg.Metrics.Namespace, logger)
	}

	logger.Info("Relay Lambda initialized",
		"topic_arn", cfg.Notification.TopicARN,
		"subject", cfg.Notification.Subject,
		"metrics_enabled", cfg.Metrics.Enabled,
		"metric_namespace", cfg.Metrics.Namespace,
		"log_level", cfg.LogLevel,
	)

	return relay.NewHandler(publisher, metrics, logger), nil
}
