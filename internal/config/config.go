// Package config defines the process configuration for the Fairweather
// services. Configuration is loaded once at startup (or Lambda cold start)
// and is immutable afterwards.
//
// Values are resolved in priority order:
//
//	OS environment -> .env file -> AWS SSM Parameter Store
//
// A missing required value or an invalid format fails startup.
package config

import (
	"time"

	"fairweather/internal/types"
)

// SecretString is the redacted secret type used for sensitive values.
type SecretString = types.SecretString

// Catalog source kinds.
const (
	CatalogSourceFile     = "file"
	CatalogSourceS3       = "s3"
	CatalogSourcePostgres = "postgres"
)

// Config is the top-level configuration. Components receive only the
// section they need.
type Config struct {
	Environment string `envconfig:"APP_ENV" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"fairweather"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	Server        ServerConfig
	Catalog       CatalogConfig
	AWS           AWSConfig
	Engine        EngineConfig
	Observability ObservabilityConfig

	// Injected via ldflags, not the environment.
	Build BuildInfo
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port               string        `envconfig:"PORT" default:"8080"`
	ReadTimeout        time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout       time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s"`
	MaxBodyBytes       int64         `envconfig:"HTTP_MAX_BODY_BYTES" default:"1048576" validate:"gt=0"`
	CorsAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// CatalogConfig selects where the activity catalog is read from.
type CatalogConfig struct {
	Source string `envconfig:"CATALOG_SOURCE" default:"file" validate:"oneof=file s3 postgres"`

	// file
	Path string `envconfig:"CATALOG_PATH" default:"catalog/activities.yaml" validate:"required_if=Source file"`

	// s3
	Bucket string `envconfig:"CATALOG_BUCKET" validate:"required_if=Source s3"`
	Key    string `envconfig:"CATALOG_KEY" default:"activities.yaml"`

	// postgres
	DatabaseURL SecretString `envconfig:"DATABASE_URL" validate:"required_if=Source postgres"`
	MaxConns    int32        `envconfig:"DB_MAX_CONNS" default:"4"`

	LoadTimeout time.Duration `envconfig:"CATALOG_LOAD_TIMEOUT" default:"20s"`
}

// AWSConfig holds AWS resource identifiers.
type AWSConfig struct {
	Region string `envconfig:"AWS_REGION" default:"us-east-1"`

	// ResultQueueURL receives plans produced by the suggestion worker.
	ResultQueueURL string `envconfig:"SQS_RESULTS" validate:"omitempty,url"`

	// LocalStack support; empty in production.
	EndpointURL string `envconfig:"AWS_ENDPOINT_URL"`
}

// EngineConfig tunes suggestion planning.
type EngineConfig struct {
	MaxSuggestions   int `envconfig:"MAX_SUGGESTIONS" default:"10" validate:"min=1,max=50"`
	EveningStartHour int `envconfig:"EVENING_START_HOUR" default:"17" validate:"min=12,max=23"`
	MaxDays          int `envconfig:"MAX_FORECAST_DAYS" default:"16" validate:"min=1,max=31"`
}

// ObservabilityConfig holds telemetry settings.
type ObservabilityConfig struct {
	MetricNamespace string `envconfig:"METRIC_NAMESPACE" default:"Fairweather"`
	EnableMetrics   bool   `envconfig:"ENABLE_METRICS" default:"false"`
}

// BuildInfo holds build-time metadata injected via ldflags.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// ConfigErrorType categorizes configuration failures.
type ConfigErrorType string

const (
	ErrMissingEnv    ConfigErrorType = "MISSING_ENV"
	ErrSSMResolution ConfigErrorType = "SSM_FAILURE"
	ErrValidation    ConfigErrorType = "VALIDATION_FAILED"
	ErrParsing       ConfigErrorType = "PARSING_FAILED"
)
