package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SuitabilityLevel is the discrete verdict on how well an activity fits a
// weather record. The declaration order is the suitability order:
// excluded < acceptable < indoor < good < perfect. IndoorAlternative marks a
// substituted alternative and sits outside that order.
type SuitabilityLevel int

const (
	LevelExcluded SuitabilityLevel = iota
	LevelAcceptable
	LevelIndoor
	LevelGood
	LevelPerfect
	LevelIndoorAlternative
)

var levelNames = [...]string{
	LevelExcluded:          "excluded",
	LevelAcceptable:        "acceptable",
	LevelIndoor:            "indoor",
	LevelGood:              "good",
	LevelPerfect:           "perfect",
	LevelIndoorAlternative: "indoorAlternative",
}

// String returns the wire name of the level.
func (l SuitabilityLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseSuitabilityLevel converts a wire name back to a level.
func ParseSuitabilityLevel(s string) (SuitabilityLevel, error) {
	for i, name := range levelNames {
		if strings.EqualFold(name, s) {
			return SuitabilityLevel(i), nil
		}
	}
	return LevelExcluded, fmt.Errorf("unknown suitability level %q", s)
}

// SelectionRank orders levels for picking suggestions:
// perfect > good = acceptable > indoorAlternative > indoor > excluded.
func (l SuitabilityLevel) SelectionRank() int {
	switch l {
	case LevelPerfect:
		return 4
	case LevelGood, LevelAcceptable:
		return 3
	case LevelIndoorAlternative:
		return 2
	case LevelIndoor:
		return 1
	default:
		return 0
	}
}

// IsIndoor reports whether the level denotes an indoor suggestion, either the
// activity's own or a substituted alternative.
func (l SuitabilityLevel) IsIndoor() bool {
	return l == LevelIndoor || l == LevelIndoorAlternative
}

// MarshalJSON encodes the level by name.
func (l SuitabilityLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level name.
func (l *SuitabilityLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSuitabilityLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ActivityDefinition is a static catalog entry. Definitions are loaded once
// at startup and never mutated.
type ActivityDefinition struct {
	ID                string   `json:"id" yaml:"id" validate:"required,max=64"`
	Name              string   `json:"name" yaml:"name" validate:"required,max=200"`
	Category          string   `json:"category,omitempty" yaml:"category"`
	SecondaryCategory string   `json:"secondaryCategory,omitempty" yaml:"secondaryCategory"`
	WeatherSensitive  bool     `json:"weatherSensitive" yaml:"weatherSensitive"`
	Tags              []string `json:"tags,omitempty" yaml:"tags"`
	PoorConditions    []string `json:"poorConditions,omitempty" yaml:"poorConditions"`
	GoodConditions    []string `json:"goodConditions,omitempty" yaml:"goodConditions"`
	PerfectConditions []string `json:"perfectConditions,omitempty" yaml:"perfectConditions"`
	IndoorAlternative string   `json:"indoorAlternative,omitempty" yaml:"indoorAlternative"`
	SeasonalMonths    []int    `json:"seasonalMonths,omitempty" yaml:"seasonalMonths" validate:"omitempty,dive,min=1,max=12"`
}

// HasTag reports whether the activity declares the tag (case-insensitive).
func (a *ActivityDefinition) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// InSeason reports whether the activity may be suggested in the given month.
// Activities without seasonal months are always in season.
func (a *ActivityDefinition) InSeason(month time.Month) bool {
	if len(a.SeasonalMonths) == 0 {
		return true
	}
	for _, m := range a.SeasonalMonths {
		if time.Month(m) == month {
			return true
		}
	}
	return false
}

// Suggestion is one recommended activity for a forecast day.
type Suggestion struct {
	ActivityID string           `json:"activityId"`
	Level      SuitabilityLevel `json:"evaluation"`
	Score      *int             `json:"score,omitempty"`
}

// WithScore returns a copy of the suggestion carrying the given score.
func (s Suggestion) WithScore(score int) Suggestion {
	s.Score = &score
	return s
}

// ScoreOrZero returns the score, or 0 when none was computed.
func (s Suggestion) ScoreOrZero() int {
	if s.Score == nil {
		return 0
	}
	return *s.Score
}
