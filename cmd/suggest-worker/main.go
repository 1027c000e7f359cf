// Package main is the entry point for the suggestion worker Lambda.
//
// The worker is triggered by SQS. Each message body is a plan request; the
// finished plan is published to the results queue. Failed records are
// reported individually so SQS redelivers only those.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"fairweather/internal/bootstrap"
	"fairweather/internal/config"
	"fairweather/internal/queue"
	"fairweather/internal/recommend"
	"fairweather/internal/types"
	"fairweather/internal/worker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := config.LoadConfig(bootstrap.SecretProvider(os.Getenv("APP_ENV"), region))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.AWS.ResultQueueURL == "" {
		return fmt.Errorf("SQS_RESULTS must be set for the suggestion worker")
	}

	logger := bootstrap.NewLogger(os.Stdout, cfg.LogLevel)
	logger.Info("suggestion worker initializing (cold start)",
		"service", cfg.Service,
		"environment", cfg.Environment,
		"version", cfg.Build.Version,
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
	defer closer.Close()

	metrics := bootstrap.NewMetrics(cfg.Observability, awsCfg, logger)
	metrics.RecordCatalog(ctx, cfg.Catalog.Source, cat.Len())

	h := &worker.Handler{
		Planner: recommend.NewPlanner(cat, recommend.Config{
			MaxSuggestions:   cfg.Engine.MaxSuggestions,
			EveningStartHour: cfg.Engine.EveningStartHour,
			MaxDays:          cfg.Engine.MaxDays,
		}, nil, metrics, logger, types.RealClock{}),
		Publisher: queue.NewResultPublisher(sqs.NewFromConfig(awsCfg), cfg.AWS.ResultQueueURL, logger),
		Log:       logger,
	}

	// Local mode reads one SQS event from stdin instead of starting the
	// Lambda runtime.
	if cfg.Environment == "local" && !bootstrap.IsLambda() {
		logger.Info("APP_ENV=local: reading SQS event from stdin")
		payload, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		var ev events.SQSEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("decoding SQS event: %w", err)
		}
		resp, err := h.Handle(ctx, ev)
		if err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(resp)
	}

	lambda.Start(h.Handle)
	return nil
}
