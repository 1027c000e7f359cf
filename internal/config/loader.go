package config

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ConfigError is returned by LoadConfig.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ssmParamSuffix marks a variable holding an SSM path for another variable:
// DATABASE_URL_SSM_PARAM=/prod/fairweather/database_url fills DATABASE_URL.
const ssmParamSuffix = "_SSM_PARAM"

const localEnv = "local"

// ssmTimeout bounds secret resolution during startup.
const ssmTimeout = 30 * time.Second

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

// LoadConfig loads, resolves and validates the configuration. Outside the
// local environment, *_SSM_PARAM variables are resolved through provider,
// which must then be non-nil.
func LoadConfig(provider SecretProvider) (*Config, error) {
	return loadConfigWithDeps(provider, defaultDeps())
}

func loadConfigWithDeps(provider SecretProvider, deps loaderDeps) (*Config, error) {
	time.Local = time.UTC

	// A missing .env is fine; existing variables are never overridden.
	_ = godotenv.Load()

	if appEnv, _ := deps.lookupEnv("APP_ENV"); appEnv != localEnv {
		if err := resolveSSMParams(provider, deps); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{Type: ErrParsing, Message: "failed to process environment configuration", Err: err}
	}
	cfg.Build = NewBuildInfo()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, &ConfigError{Type: ErrValidation, Message: "configuration validation failed", Err: err}
	}
	return &cfg, nil
}

// ResolveSecrets runs only the SSM resolution step. Entry points that read
// single variables with os.Getenv call it before doing so.
func ResolveSecrets(provider SecretProvider) error {
	if appEnv, _ := os.LookupEnv("APP_ENV"); appEnv == localEnv {
		return nil
	}
	return resolveSSMParams(provider, defaultDeps())
}

// resolveSSMParams fills each TARGET for which TARGET_SSM_PARAM is set and
// TARGET itself is not.
func resolveSSMParams(provider SecretProvider, deps loaderDeps) error {
	targets := make(map[string]string) // ssm path -> target variable
	for _, entry := range deps.environ() {
		key, path, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasSuffix(key, ssmParamSuffix) || path == "" {
			continue
		}
		target := strings.TrimSuffix(key, ssmParamSuffix)
		if _, set := deps.lookupEnv(target); set {
			continue
		}
		targets[path] = target
	}
	if len(targets) == 0 {
		return nil
	}

	paths := make([]string, 0, len(targets))
	for p := range targets {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	if provider == nil {
		names := make([]string, 0, len(paths))
		for _, p := range paths {
			names = append(names, targets[p])
		}
		return &ConfigError{
			Type:    ErrSSMResolution,
			Message: fmt.Sprintf("SecretProvider is required for non-local environments (need to resolve: %s)", strings.Join(names, ", ")),
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), ssmTimeout)
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
		value, ok := resolved[p]
		if !ok {
			missing = append(missing, targets[p])
			continue
		}
		if err := deps.setEnv(targets[p], value); err != nil {
			return &ConfigError{
				Type:    ErrSSMResolution,
				Message: fmt.Sprintf("failed to set resolved value for %s", targets[p]),
				Err:     err,
			}
		}
	}
	if len(missing) > 0 {
		return &ConfigError{
			Type:    ErrMissingEnv,
			Message: fmt.Sprintf("SSM parameters not found for: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}
