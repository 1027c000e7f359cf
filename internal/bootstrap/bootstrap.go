// Package bootstrap builds the process-wide dependencies shared by the
// Fairweather entry points: logger, AWS clients, catalog source and metrics.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"

	"fairweather/internal/catalog"
	"fairweather/internal/config"
	"fairweather/internal/metrics"
	"fairweather/internal/types"
)

// NewLogger creates a JSON slog.Logger writing to w at the named level.
// Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// IsLambda reports whether the process runs inside the AWS Lambda runtime.
func IsLambda() bool {
	_, hasRuntimeAPI := os.LookupEnv("AWS_LAMBDA_RUNTIME_API")
	_, hasServerPort := os.LookupEnv("_LAMBDA_SERVER_PORT")
	return hasRuntimeAPI || hasServerPort
}

// SecretProvider picks the SSM provider outside the local environment.
func SecretProvider(appEnv, region string) config.SecretProvider {
	if appEnv == "local" {
		return config.NewEnvVarProvider()
	}
	return config.NewSSMProvider(region)
}

// LoadAWSConfig loads the SDK configuration for the configured region. A
// non-empty EndpointURL (LocalStack) overrides every service endpoint.
func LoadAWSConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.EndpointURL != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.EndpointURL))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS SDK config (region=%s): %w", cfg.Region, err)
	}
	return awsCfg, nil
}

// CatalogSource builds the source selected by cfg.Source. The returned
// closer releases any connection pool and is never nil.
func CatalogSource(ctx context.Context, cfg config.CatalogConfig, awsCfg aws.Config, endpointOverride bool) (catalog.Source, io.Closer, error) {
	switch cfg.Source {
	case config.CatalogSourceFile, "":
		return catalog.NewFileSource(cfg.Path), nopCloser{}, nil

	case config.CatalogSourceS3:
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			// LocalStack serves buckets path-style only.
			o.UsePathStyle = endpointOverride
		})
		return catalog.NewS3Source(client, cfg.Bucket, cfg.Key), nopCloser{}, nil

	case config.CatalogSourcePostgres:
		poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL.Unmask())
		if err != nil {
			return nil, nil, fmt.Errorf("parsing catalog database URL: %w", err)
		}
		if cfg.MaxConns > 0 {
			poolCfg.MaxConns = cfg.MaxConns
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("creating catalog database pool: %w", err)
		}
		return catalog.NewPostgresSource(pool), poolCloser{pool}, nil
	}
	return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
}

// LoadCatalog builds the configured source and loads the catalog within
// cfg.Catalog.LoadTimeout.
func LoadCatalog(ctx context.Context, cfg *config.Config, awsCfg aws.Config, logger *slog.Logger) (*catalog.Catalog, io.Closer, error) {
	src, closer, err := CatalogSource(ctx, cfg.Catalog, awsCfg, cfg.AWS.EndpointURL != "")
	if err != nil {
		return nil, nil, err
	}

	loadCtx := ctx
	if cfg.Catalog.LoadTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, cfg.Catalog.LoadTimeout)
		defer cancel()
	}

	cat, err := catalog.Load(loadCtx, src, logger)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return cat, closer, nil
}

// Metrics is the combined metrics surface used by the entry points.
type Metrics interface {
	RecordPlan(ctx context.Context, stats types.PlanStats)
	RecordCatalog(ctx context.Context, source string, size int)
	RecordRequest(method, endpoint, status string, duration time.Duration)
}

// NewMetrics returns a CloudWatch publisher when metrics are enabled and a
// no-op recorder otherwise.
func NewMetrics(cfg config.ObservabilityConfig, awsCfg aws.Config, logger *slog.Logger) Metrics {
	if !cfg.EnableMetrics {
		return metrics.Noop{}
	}
	return metrics.NewCloudWatchPublisher(cloudwatch.NewFromConfig(awsCfg), cfg.MetricNamespace, types.NewSlogLogger(logger))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type poolCloser struct{ pool *pgxpool.Pool }

func (c poolCloser) Close() error {
	c.pool.Close()
	return nil
}
