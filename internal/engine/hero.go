package engine

import (
	"sort"

	"fairweather/internal/types"
)

// ScoredSuggestion is a suggestion with its final score.
type ScoredSuggestion struct {
	ActivityID string                 `json:"activityId"`
	Level      types.SuitabilityLevel `json:"evaluation"`
	Score      int                    `json:"score"`
}

// Suggestion converts back to the list form with the score attached.
func (s ScoredSuggestion) Suggestion() types.Suggestion {
	return types.Suggestion{ActivityID: s.ActivityID, Level: s.Level}.WithScore(s.Score)
}

// HeroThresholds are the minimum scores for each hero tier.
type HeroThresholds struct {
	Perfect    int
	Good       int
	Acceptable int
}

var (
	// DaytimeThresholds apply before the evening starts.
	DaytimeThresholds = HeroThresholds{Perfect: 80, Good: 60, Acceptable: 30}
	// EveningThresholds are lower: fewer options are open in the evening.
	EveningThresholds = HeroThresholds{Perfect: 70, Good: 50, Acceptable: 25}
)

// ThresholdsFor returns the tier thresholds for the time of day.
func ThresholdsFor(isEvening bool) HeroThresholds {
	if isEvening {
		return EveningThresholds
	}
	return DaytimeThresholds
}

// SelectHero picks the day's headline suggestion. Outdoor suggestions are
// tried tier by tier (perfect, good, acceptable), then indoor ones meeting
// the acceptable bar, then whatever scored highest. Ties keep input order.
// It returns false only for an empty list.
func SelectHero(scored []ScoredSuggestion, isEvening bool) (ScoredSuggestion, bool) {
	if len(scored) == 0 {
		return ScoredSuggestion{}, false
	}

	sorted := make([]ScoredSuggestion, len(scored))
	copy(sorted, scored)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	th := ThresholdsFor(isEvening)
	for _, bar := range []int{th.Perfect, th.Good, th.Acceptable} {
		if s, ok := firstAtLeast(sorted, bar, false); ok {
			return s, true
		}
	}
	if s, ok := firstAtLeast(sorted, th.Acceptable, true); ok {
		return s, true
	}
	return sorted[0], true
}

func firstAtLeast(sorted []ScoredSuggestion, bar int, indoor bool) (ScoredSuggestion, bool) {
	for _, s := range sorted {
		if s.Level.IsIndoor() == indoor && s.Score >= bar {
			return s, true
		}
	}
	return ScoredSuggestion{}, false
}
