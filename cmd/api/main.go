// Package main is the entry point for the Fairweather API.
//
// It loads configuration and the activity catalog, builds the HTTP chassis
// with the activity, suggestion and condition handlers, and serves either
// as a local HTTP server or as an API Gateway (HTTP API) Lambda.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"fairweather/internal/api/handlers"
	"fairweather/internal/bootstrap"
	"fairweather/internal/catalog"
	"fairweather/internal/config"
	"fairweather/internal/core"
	"fairweather/internal/recommend"
	"fairweather/internal/types"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	appEnv := os.Getenv("APP_ENV")
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := config.LoadConfig(bootstrap.SecretProvider(appEnv, region))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := bootstrap.NewLogger(os.Stdout, cfg.LogLevel)
	logger.Info("fairweather API starting",
		"service", cfg.Service,
		"environment", cfg.Environment,
		"version", cfg.Build.Version,
		"commit", cfg.Build.Commit,
		"catalog_source", cfg.Catalog.Source,
	)

	awsCfg, err := bootstrap.LoadAWSConfig(ctx, cfg.AWS)
	if err != nil {
		return err
	}

	cat, closer, err := bootstrap.LoadCatalog(ctx, cfg, awsCfg, logger)
	if err != nil {
		return fmt.Errorf("loading activity catalog: %w", err)
	}

	metrics := bootstrap.NewMetrics(cfg.Observability, awsCfg, logger)
	metrics.RecordCatalog(ctx, cfg.Catalog.Source, cat.Len())

	srv, err := buildServer(cfg, cat, metrics, logger, types.RealClock{})
	if err != nil {
		return err
	}
	srv.Closers = append(srv.Closers, closer)

	if bootstrap.IsLambda() {
		logger.Info("starting in Lambda mode")
		lambda.Start(lambdaHandler(srv.Handler()))
		return nil
	}
	return runHTTPServer(srv, cfg, logger)
}

// buildServer wires the handlers onto the chassis and mounts the routes.
func buildServer(cfg *config.Config, cat *catalog.Catalog, metrics bootstrap.Metrics, logger *slog.Logger, clock types.Clock) (*core.Server, error) {
	srv, err := core.NewServer(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}
	srv.Metrics = metrics

	planner := recommend.NewPlanner(cat, recommend.Config{
		MaxSuggestions:   cfg.Engine.MaxSuggestions,
		EveningStartHour: cfg.Engine.EveningStartHour,
		MaxDays:          cfg.Engine.MaxDays,
	}, nil, metrics, logger, clock)

	maxBody := srv.MaxBodyBytes()
	srv.V1RouteRegistrars = handlers.Registrars(
		handlers.NewActivityHandler(cat, srv.Validator, logger, handlers.ActivityHandlerOptions{
			Clock:            clock,
			MaxBodyBytes:     maxBody,
			EveningStartHour: cfg.Engine.EveningStartHour,
		}),
		handlers.NewSuggestionHandler(planner, srv.Validator, logger, maxBody),
		handlers.NewConditionHandler(srv.Validator, maxBody),
	)
	srv.HealthProbes = append(srv.HealthProbes, catalogProbe(cat))

	srv.MountRoutes()
	return srv, nil
}

// catalogProbe fails when the loaded catalog is empty.
func catalogProbe(cat *catalog.Catalog) core.HealthProbe {
	return core.ProbeFunc{
		ProbeName: "catalog",
		Fn: func(context.Context) error {
			if cat.Len() == 0 {
				return errors.New("activity catalog is empty")
			}
			return nil
		},
	}
}

func runHTTPServer(srv *core.Server, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}
