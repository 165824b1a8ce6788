// loader.go implements the configuration loading lifecycle.
//
// The loading sequence is:
//  1. Enforce UTC timezone so every emitted timestamp is UTC.
//  2. Load .env file via godotenv (non-fatal if absent).
//  3. If APP_ENV != "local", resolve _SSM_PARAM pointer variables via the
//     SecretProvider and inject the resolved values back into the environment.
//  4. Use envconfig to process struct tags and populate the target struct.
//  5. Populate BuildInfo from linker-injected variables.
//  6. Validate the struct using go-playground/validator.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ConfigError is a diagnostic error type returned by the loaders.
// It wraps a ConfigErrorType and an underlying error message.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ssmParamSuffix identifies SSM pointer variables. SNS_TOPIC_ARN_SSM_PARAM
// holds the SSM path whose value becomes SNS_TOPIC_ARN.
const ssmParamSuffix = "_SSM_PARAM"

// localEnv is the APP_ENV value that bypasses SSM resolution.
const localEnv = "local"

// ssmResolveTimeout bounds the whole SSM resolution step.
const ssmResolveTimeout = 30 * time.Second

type loaderDeps struct {
	lookupEnv func(key string) (string, bool)
	setEnv    func(key, value string) error
	environ   func() []string
}

func defaultDeps() loaderDeps {
	return loaderDeps{
		lookupEnv: os.LookupEnv,
		setEnv:    os.Setenv,
		environ:   os.Environ,
	}
}

// LoadConfig loads and validates the API service configuration.
//
// The provider resolves _SSM_PARAM pointers outside the local environment.
// It may be nil when no pointers are present.
func LoadConfig(provider SecretProvider) (*Config, error) {
	var cfg Config
	if err := load(provider, defaultDeps(), &cfg); err != nil {
		return nil, err
	}
	cfg.Build = NewBuildInfo()
	return &cfg, nil
}

// LoadRelayConfig loads and validates the relay configuration. It fails when
// SNS_TOPIC_ARN (directly or via SNS_TOPIC_ARN_SSM_PARAM) is not available.
func LoadRelayConfig(provider SecretProvider) (*RelayConfig, error) {
	var cfg RelayConfig
	if err := load(provider, defaultDeps(), &cfg); err != nil {
		return nil, err
	}
	cfg.Build = NewBuildInfo()
	return &cfg, nil
}

// load runs the shared loading sequence into target, a pointer to a struct
// carrying envconfig and validate tags.
func load(provider SecretProvider, deps loaderDeps, target any) error {
	time.Local = time.UTC

	// godotenv does NOT override variables already present in the environment.
	_ = godotenv.Load()

	if appEnv, _ := deps.lookupEnv("APP_ENV"); appEnv != localEnv {
		if err := resolveSSMParams(provider, deps); err != nil {
			return err
		}
	}

	if err := envconfig.Process("", target); err != nil {
		return &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}

	if err := validator.New().Struct(target); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError reports missing required values as ErrMissingEnv and every
// other rule violation as ErrValidation.
func validationError(err error) *ConfigError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var missing []string
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				missing = append(missing, fe.Namespace())
			}
		}
		if len(missing) > 0 {
			return &ConfigError{
				Type:    ErrMissingEnv,
				Message: "required configuration missing: " + strings.Join(missing, ", "),
				Err:     err,
			}
		}
	}
	return &ConfigError{
		Type:    ErrValidation,
		Message: "configuration validation failed",
		Err:     err,
	}
}

// resolveSSMParams scans the environment for _SSM_PARAM variables, fetches
// the referenced values in one batch and injects them under the stripped
// name. Targets already set in the environment are left untouched.
func resolveSSMParams(provider SecretProvider, deps loaderDeps) error {
	pathToTarget := make(map[string]string)

	for _, entry := range deps.environ() {
		key, path, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasSuffix(key, ssmParamSuffix) || path == "" {
			continue
		}
		target := strings.TrimSuffix(key, ssmParamSuffix)
		if _, exists := deps.lookupEnv(target); exists {
			continue
		}
		pathToTarget[path] = target
	}

	if len(pathToTarget) == 0 {
		return nil
	}

	paths := make([]string, 0, len(pathToTarget))
	for p := range pathToTarget {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	if provider == nil {
		targets := make([]string, 0, len(paths))
		for _, p := range paths {
			targets = append(targets, pathToTarget[p])
		}
		return &ConfigError{
			Type:    ErrSSMResolution,
			Message: fmt.Sprintf("SecretProvider is required for non-local environments (need to resolve: %s)", strings.Join(targets, ", ")),
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), ssmResolveTimeout)
	defer cancel()

	resolved, err := provider.GetParametersBatch(ctx, paths)
	if err != nil {
		return &ConfigError{
			Type:    ErrSSMResolution,
			Message: fmt.Sprintf("failed to resolve %d SSM parameters", len(paths)),
			Err:     err,
		}
	}

	var missing []string
	for _, p := range paths {
		target := pathToTarget[p]
		value, ok := resolved[p]
		if !ok {
			missing = append(missing, target)
			continue
		}
		if err := deps.setEnv(target, value); err != nil {
			return &ConfigError{
				Type:    ErrSSMResolution,
				Message: fmt.Sprintf("failed to set resolved value for %s", target),
				Err:     err,
			}
		}
	}
	if len(missing) > 0 {
		return &ConfigError{
			Type:    ErrSSMResolution,
			Message: fmt.Sprintf("SSM parameters not found for: %s", strings.Join(missing, ", ")),
		}
	}

	return nil
}
