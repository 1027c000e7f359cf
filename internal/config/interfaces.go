package config

import "context"

// SecretProvider resolves secret references (SSM parameter paths locally
// backed by environment variables) to plaintext values.
type SecretProvider interface {
	// GetParametersBatch returns key -> value for every key it could
	// resolve. Keys it cannot find are omitted.
	GetParametersBatch(ctx context.Context, keys []string) (map[string]string, error)
}
