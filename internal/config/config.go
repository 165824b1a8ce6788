// Package config defines the process configuration for the TechWave API
// service and the queue relay. Configuration is loaded once at process start
// (or Lambda cold start) and is immutable thereafter.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File -> AWS SSM Parameter Store (Lowest)
//
// Any missing required value or invalid format is reported as a *ConfigError
// and the binaries refuse to start.
package config

import "time"

// Config is the configuration of the Metrics/Alert API service.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"techwave-api" validate:"required"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	Server   ServerConfig
	Logging  LoggingConfig
	Security SecurityConfig

	// Build Metadata (Injected via ldflags, not Env)
	Build BuildInfo
}

// ServerConfig holds HTTP listener and request handling settings.
type ServerConfig struct {
	Port              string        `envconfig:"PORT" default:"3000" validate:"required,numeric"`
	ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"10s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	// MaxBodyBytes caps JSON request bodies; larger bodies fail the request.
	MaxBodyBytes   int64 `envconfig:"MAX_BODY_BYTES" default:"102400" validate:"gt=0"`
	MetricsEnabled bool  `envconfig:"METRICS_ENABLED" default:"true"`
}

// LoggingConfig holds the persisted log sinks. An empty path disables the sink.
type LoggingConfig struct {
	ErrorFile    string `envconfig:"LOG_ERROR_FILE" default:"error.log"`
	CombinedFile string `envconfig:"LOG_COMBINED_FILE" default:"combined.log"`
	// Pretty switches console output to coloured text for local runs.
	Pretty bool `envconfig:"LOG_PRETTY" default:"false"`
}

// SecurityConfig holds browser-facing security settings.
type SecurityConfig struct {
	CorsAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*" validate:"min=1"`
}

// RelayConfig is the configuration of the queue-to-notification relay Lambda.
type RelayConfig struct {
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"techwave-relay" validate:"required"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	AWS          AWSConfig
	Notification NotificationConfig
	Metrics      MetricsConfig

	Build BuildInfo
}

// AWSConfig holds AWS regional configuration.
type AWSConfig struct {
	Region string `envconfig:"AWS_REGION" default:"us-east-1" validate:"required"`

	// LocalStack Support (Empty in Prod)
	EndpointURL string `envconfig:"AWS_ENDPOINT_URL" validate:"omitempty,url"`
}

// NotificationConfig identifies where processed messages are published.
type NotificationConfig struct {
	TopicARN string `envconfig:"SNS_TOPIC_ARN" validate:"required"`
	Subject  string `envconfig:"SNS_SUBJECT" default:"Message Processed" validate:"required,max=100"`
}

// MetricsConfig holds relay telemetry settings.
type MetricsConfig struct {
	Namespace string `envconfig:"METRIC_NAMESPACE" default:"TechWave"`
	Enabled   bool   `envconfig:"RELAY_METRICS_ENABLED" default:"false"`
}

// BuildInfo holds build-time metadata injected via ldflags.
// These values are NOT populated from environment variables.
type BuildInfo struct {
	Version   string `ignored:"true"`
	Commit    string `ignored:"true"`
	BuildTime string `ignored:"true"`
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrMissingEnv indicates a required environment variable was not found.
	ErrMissingEnv ConfigErrorType = "MISSING_ENV"
	// ErrSSMResolution indicates a failure when fetching secrets from AWS SSM.
	ErrSSMResolution ConfigErrorType = "SSM_FAILURE"
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
