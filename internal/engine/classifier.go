package engine

import (
	"fairweather/internal/catalog"
	"fairweather/internal/conditions"
	"fairweather/internal/types"
)

// Classify decides how well an activity suits the weather. Rules apply in
// order and the first that fires wins:
//
//  1. not weather-sensitive: indoor
//  2. any poor condition holds: excluded
//  3. every perfect condition holds: perfect
//  4. every good condition holds: good
//  5. no good or perfect conditions at all: acceptable
//  6. otherwise: excluded
//
// Poor conditions use the strict check, so a missing attribute never
// excludes. Perfect conditions are strict too: unknown data cannot make a day
// perfect. Good conditions use the neutral check so missing data alone does
// not knock an activity out of the list.
func Classify(a *catalog.Activity, w types.WeatherRecord) types.SuitabilityLevel {
	if !a.WeatherSensitive {
		return types.LevelIndoor
	}
	if anyMatch(a.Poor, w, conditions.Matches) {
		return types.LevelExcluded
	}
	if len(a.Perfect) > 0 && allMatch(a.Perfect, w, conditions.Matches) {
		return types.LevelPerfect
	}
	if len(a.Good) > 0 && allMatch(a.Good, w, conditions.MatchesSafe) {
		return types.LevelGood
	}
	if len(a.Good) == 0 && len(a.Perfect) == 0 {
		return types.LevelAcceptable
	}
	return types.LevelExcluded
}

type matchFunc func(conditions.Condition, types.WeatherRecord) bool

func anyMatch(cs []conditions.Condition, w types.WeatherRecord, match matchFunc) bool {
	for _, c := range cs {
		if match(c, w) {
			return true
		}
	}
	return false
}

func allMatch(cs []conditions.Condition, w types.WeatherRecord, match matchFunc) bool {
	for _, c := range cs {
		if !match(c, w) {
			return false
		}
	}
	return true
}
