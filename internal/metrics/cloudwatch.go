// Package metrics publishes engine and API telemetry to CloudWatch.
package metrics

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"fairweather/internal/types"
)

// requestMetricTimeout bounds the PutMetricData call made per API request.
const requestMetricTimeout = 2 * time.Second

// CloudWatchClient is the subset of the CloudWatch API the publisher uses.
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatchPublisher records plan and request metrics. Publish failures are
// logged and never surface to callers.
type CloudWatchPublisher struct {
	client    CloudWatchClient
	namespace string
	logger    types.Logger
}

// NewCloudWatchPublisher creates a publisher. An empty namespace uses
// types.MetricNamespace.
func NewCloudWatchPublisher(client CloudWatchClient, namespace string, logger types.Logger) *CloudWatchPublisher {
	if namespace == "" {
		namespace = types.MetricNamespace
	}
	return &CloudWatchPublisher{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// RecordPlan emits one batch per plan: suggestion and empty-day counts,
// latency, and a HeroSelected count per hero level.
func (p *CloudWatchPublisher) RecordPlan(ctx context.Context, stats types.PlanStats) {
	data := []cwtypes.MetricDatum{
		{
			MetricName: aws.String(types.MetricSuggestionsGenerated),
			Value:      aws.Float64(float64(stats.Suggestions)),
			Unit:       cwtypes.StandardUnitCount,
		},
		{
			MetricName: aws.String(types.MetricEmptyDay),
			Value:      aws.Float64(float64(stats.EmptyDays)),
			Unit:       cwtypes.StandardUnitCount,
		},
		{
			MetricName: aws.String(types.MetricPlanLatency),
			Value:      aws.Float64(float64(stats.Latency.Milliseconds())),
			Unit:       cwtypes.StandardUnitMilliseconds,
		},
	}

	levels := make([]string, 0, len(stats.HeroLevels))
	for level := range stats.HeroLevels {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	for _, level := range levels {
		data = append(data, cwtypes.MetricDatum{
			MetricName: aws.String(types.MetricHeroSelected),
			Value:      aws.Float64(float64(stats.HeroLevels[level])),
			Unit:       cwtypes.StandardUnitCount,
			Dimensions: []cwtypes.Dimension{
				{Name: aws.String(types.DimLevel), Value: aws.String(level)},
			},
		})
	}

	if _, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(p.namespace),
		MetricData: data,
	}); err != nil {
		p.logger.Error("failed to record plan metrics",
			"error", err.Error(),
			"days", stats.Days,
			"suggestions", stats.Suggestions,
		)
	}
}

// RecordRequest emits API latency and a request count dimensioned by
// endpoint, method and status.
func (p *CloudWatchPublisher) RecordRequest(method, endpoint, status string, duration time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), requestMetricTimeout)
	defer cancel()

	dims := []cwtypes.Dimension{
		{Name: aws.String(types.DimEndpoint), Value: aws.String(endpoint)},
		{Name: aws.String(types.DimMethod), Value: aws.String(method)},
		{Name: aws.String(types.DimStatus), Value: aws.String(status)},
	}
	input := &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(p.namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: aws.String(types.MetricAPILatency),
				Value:      aws.Float64(float64(duration.Milliseconds())),
				Unit:       cwtypes.StandardUnitMilliseconds,
				Dimensions: dims,
			},
			{
				MetricName: aws.String(types.MetricAPIRequestCount),
				Value:      aws.Float64(1),
				Unit:       cwtypes.StandardUnitCount,
				Dimensions: dims,
			},
		},
	}

	if _, err := p.client.PutMetricData(ctx, input); err != nil {
		p.logger.Error("failed to record request metric",
			"error", err.Error(),
			"endpoint", endpoint,
			"status", status,
		)
	}
}

// RecordCatalog emits the catalog size with the source as a dimension.
func (p *CloudWatchPublisher) RecordCatalog(ctx context.Context, source string, size int) {
	if _, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(p.namespace),
		MetricData: []cwtypes.MetricDatum{{
			MetricName: aws.String(types.MetricCatalogSize),
			Value:      aws.Float64(float64(size)),
			Unit:       cwtypes.StandardUnitCount,
			Dimensions: []cwtypes.Dimension{
				{Name: aws.String(types.DimSource), Value: aws.String(source)},
			},
		}},
	}); err != nil {
		p.logger.Error("failed to record catalog metric", "error", err.Error(), "source", source)
	}
}

// Noop discards all metrics. It is used locally and when metrics are disabled.
type Noop struct{}

func (Noop) RecordPlan(context.Context, types.PlanStats)         {}
func (Noop) RecordRequest(string, string, string, time.Duration) {}
func (Noop) RecordCatalog(context.Context, string, int)          {}
