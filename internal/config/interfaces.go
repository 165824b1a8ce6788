package config

import "context"

// SecretProvider abstracts the retrieval of configuration values referenced
// by _SSM_PARAM pointers, so that AWS SSM (deployed) and plain environment
// variables (local) are interchangeable.
type SecretProvider interface {
	// GetParametersBatch resolves the given parameter paths and returns a map
	// of path -> plaintext value for every path it could resolve.
	GetParametersBatch(ctx context.Context, keys []string) (map[string]string, error)
}
