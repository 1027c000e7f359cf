package types

import "time"

// Telemetry metric names for CloudWatch.
const (
	MetricSuggestionsGenerated = "SuggestionsGenerated"
	MetricHeroSelected         = "HeroSelected"
	MetricEmptyDay             = "EmptySuggestionDay"
	MetricPlanLatency          = "PlanLatency"
	MetricAPILatency           = "APILatency"
	MetricAPIRequestCount      = "APIRequestCount"
	MetricCatalogSize          = "CatalogSize"

	// Dimension Keys
	DimLevel    = "Level"
	DimEndpoint = "Endpoint"
	DimMethod   = "Method"
	DimStatus   = "Status"
	DimSource   = "Source"

	// MetricNamespace is the default CloudWatch namespace.
	MetricNamespace = "Fairweather"
)

// PlanStats summarises one planning run for metrics.
type PlanStats struct {
	Days        int
	Suggestions int
	EmptyDays   int
	// HeroLevels counts selected heroes by suitability level name.
	HeroLevels map[string]int
	Latency    time.Duration
}
