package config

import (
	"context"
	"os"
)

// EnvVarProvider resolves secret references as environment variable names.
// It backs local development where no SSM is available.
type EnvVarProvider struct{}

// NewEnvVarProvider creates an EnvVarProvider.
func NewEnvVarProvider() *EnvVarProvider {
	return &EnvVarProvider{}
}

// GetParametersBatch implements SecretProvider.
func (p *EnvVarProvider) GetParametersBatch(_ context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			out[k] = v
		}
	}
	return out, nil
}
