package engine

import (
	"math"

	"fairweather/internal/catalog"
)

// BoostPolicy scales an activity's base score for the moment of the request.
type BoostPolicy interface {
	Multiplier(a *catalog.Activity, ctx ScoreContext) float64
}

// BoostFunc adapts a function to BoostPolicy.
type BoostFunc func(a *catalog.Activity, ctx ScoreContext) float64

// Multiplier implements BoostPolicy.
func (f BoostFunc) Multiplier(a *catalog.Activity, ctx ScoreContext) float64 { return f(a, ctx) }

// NoBoost leaves scores unchanged.
var NoBoost BoostPolicy = BoostFunc(func(*catalog.Activity, ScoreContext) float64 { return 1 })

// Multipliers used by DefaultBoostPolicy.
const (
	EveningBoost       = 1.3
	DaytimeOnlyPenalty = 0.7
	WeekendBoost       = 1.2
	AfterWorkBoost     = 1.15
	TagOverlapStep     = 0.1
	TagOverlapCap      = 1.5
)

var (
	eveningTags   = []string{"evening", "nightlife", "dinner", "stargazing", "sunset", "night"}
	daytimeTags   = []string{"daytime", "sunrise", "morning"}
	weekendTags   = []string{"weekend", "day-trip", "family", "social"}
	afterWorkTags = []string{"after-work", "quick", "weekday"}
)

// DefaultBoostPolicy favours evening activities in the evening, weekend
// outings at weekends and short activities after work on weekdays, and
// rewards overlap with the context tags.
type DefaultBoostPolicy struct{}

// Multiplier implements BoostPolicy.
func (DefaultBoostPolicy) Multiplier(a *catalog.Activity, ctx ScoreContext) float64 {
	m := 1.0

	if ctx.IsEvening {
		switch {
		case hasAnyTag(a, eveningTags):
			m *= EveningBoost
		case hasAnyTag(a, daytimeTags):
			m *= DaytimeOnlyPenalty
		}
	}

	if ctx.Weekend {
		if hasAnyTag(a, weekendTags) {
			m *= WeekendBoost
		}
	} else if (ctx.Phase == PhaseAfternoon || ctx.Phase == PhaseEvening) && hasAnyTag(a, afterWorkTags) {
		m *= AfterWorkBoost
	}

	if n := tagOverlap(a.Tags, ctx.Tags); n > 0 {
		m *= math.Min(1+TagOverlapStep*float64(n), TagOverlapCap)
	}
	return m
}

func hasAnyTag(a *catalog.Activity, tags []string) bool {
	for _, t := range tags {
		if a.HasTag(t) {
			return true
		}
	}
	return false
}
