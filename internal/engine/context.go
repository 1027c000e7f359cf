package engine

import (
	"strings"
	"time"
)

// DayPhase is the coarse time of day used for context tags.
type DayPhase string

const (
	PhaseMorning   DayPhase = "morning"
	PhaseAfternoon DayPhase = "afternoon"
	PhaseEvening   DayPhase = "evening"
	PhaseNight     DayPhase = "night"
)

// Phase boundaries (hour of day, inclusive start).
const (
	morningStartHour   = 5
	afternoonStartHour = 12
	eveningPhaseHour   = 17
	nightStartHour     = 22
)

// DefaultEveningStartHour is the hour from which evening thresholds and
// boosts apply.
const DefaultEveningStartHour = 17

const (
	tagWeekend = "weekend"
	tagWeekday = "weekday"
)

// moodVocabulary is the closed set of mood words accepted as context tags.
var moodVocabulary = map[string]struct{}{
	"active":      {},
	"adventurous": {},
	"calm":        {},
	"cozy":        {},
	"creative":    {},
	"family":      {},
	"relaxed":     {},
	"romantic":    {},
	"social":      {},
}

// ScoreContext is the time-dependent input to scoring and boosts.
type ScoreContext struct {
	Weekday   time.Weekday
	Weekend   bool
	Phase     DayPhase
	IsEvening bool
	Tags      []string
}

// PhaseAt returns the phase for an hour of day.
func PhaseAt(hour int) DayPhase {
	switch {
	case hour >= nightStartHour || hour < morningStartHour:
		return PhaseNight
	case hour >= eveningPhaseHour:
		return PhaseEvening
	case hour >= afternoonStartHour:
		return PhaseAfternoon
	default:
		return PhaseMorning
	}
}

// NewScoreContext derives the context for a forecast day as seen at now.
// The weekday comes from the forecast date (falling back to now when the
// date is zero); phase and evening come from now.
//
// An eveningStartHour of zero or outside 1..23 means DefaultEveningStartHour.
// AggregateOptions, the planner and the activity handler follow the same rule.
func NewScoreContext(now, forecastDate time.Time, moods []string, eveningStartHour int) ScoreContext {
	eveningStartHour = EffectiveEveningStartHour(eveningStartHour)
	day := forecastDate
	if day.IsZero() {
		day = now
	}

	hour := now.Hour()
	wd := day.Weekday()
	ctx := ScoreContext{
		Weekday:   wd,
		Weekend:   wd == time.Saturday || wd == time.Sunday,
		Phase:     PhaseAt(hour),
		IsEvening: hour >= eveningStartHour || hour < morningStartHour,
	}
	ctx.Tags = ContextTags(wd, ctx.Phase, moods)
	return ctx
}

// EffectiveEveningStartHour applies the default to a zero or out-of-range hour.
func EffectiveEveningStartHour(h int) int {
	if h <= 0 || h > 23 {
		return DefaultEveningStartHour
	}
	return h
}

// ContextTags lists the context vocabulary for a moment: weekday name,
// weekend or weekday, the phase, then recognised moods in the order given.
// Tags are lower-case and unique.
func ContextTags(wd time.Weekday, phase DayPhase, moods []string) []string {
	tags := make([]string, 0, 3+len(moods))
	tags = append(tags, strings.ToLower(wd.String()))
	if wd == time.Saturday || wd == time.Sunday {
		tags = append(tags, tagWeekend)
	} else {
		tags = append(tags, tagWeekday)
	}
	tags = append(tags, string(phase))

	seen := make(map[string]struct{}, len(moods))
	for _, m := range moods {
		m = strings.ToLower(strings.TrimSpace(m))
		if _, ok := moodVocabulary[m]; !ok {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		tags = append(tags, m)
	}
	return tags
}

// TagMatchScore is the fraction of context tags the activity carries.
func TagMatchScore(activityTags, contextTags []string) float64 {
	if len(contextTags) == 0 {
		return 0
	}
	return float64(tagOverlap(activityTags, contextTags)) / float64(len(contextTags))
}

func tagOverlap(activityTags, contextTags []string) int {
	if len(activityTags) == 0 {
		return 0
	}
	have := make(map[string]struct{}, len(activityTags))
	for _, t := range activityTags {
		have[strings.ToLower(t)] = struct{}{}
	}
	n := 0
	for _, t := range contextTags {
		if _, ok := have[t]; ok {
			n++
		}
	}
	return n
}
