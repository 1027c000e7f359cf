package engine

import (
	"math"

	"fairweather/internal/catalog"
	"fairweather/internal/conditions"
	"fairweather/internal/types"
)

// Base scores for activities that ignore the weather.
const (
	IndoorScorePleasantDay = 20
	IndoorScoreDefault     = 50
)

// Fit thresholds and the score band each maps to. The numbers are tuning
// values, not invariants.
const (
	PerfectFitThreshold = 0.8
	GoodFitThreshold    = 0.6
	FairFitThreshold    = 0.4

	PerfectBandMin = 80
	PerfectBandMax = 100
	GoodBandMin    = 60
	GoodBandMax    = 80
	FairBandMin    = 30
	FairBandMax    = 60
	FloorScore     = 25
)

// Poor-condition penalty: the share of poor conditions scoring at least
// PoorConfidence, times PoorPenaltyMax.
const (
	PoorConfidence = 0.7
	PoorPenaltyMax = 40
)

// Pleasant-day limits.
const (
	pleasantMaxPrecipitation = 1.0
	pleasantMinTemperature   = 15.0
	pleasantMaxTemperature   = 28.0
	pleasantMaxWindSpeed     = 20.0
)

// IsPleasant reports whether the weather is good enough that an indoor
// suggestion should be discouraged: little or no rain, mild temperature and
// moderate wind. Temperature is required; missing rain or wind counts as fine.
func IsPleasant(w types.WeatherRecord) bool {
	if p, ok := w.Get(types.AttrPrecipitation); ok && p >= pleasantMaxPrecipitation {
		return false
	}
	t, ok := w.Get(types.AttrTemperature)
	if !ok || t < pleasantMinTemperature || t > pleasantMaxTemperature {
		return false
	}
	if ws, ok := w.Get(types.AttrWindSpeed); ok && ws >= pleasantMaxWindSpeed {
		return false
	}
	return true
}

// BaseScore rates the activity against the weather on a 0..100 scale before
// any contextual boost.
func BaseScore(a *catalog.Activity, w types.WeatherRecord, ctx ScoreContext) int {
	if !a.WeatherSensitive {
		if IsPleasant(w) && !ctx.IsEvening {
			return IndoorScorePleasantDay
		}
		return IndoorScoreDefault
	}

	perfectFit := averageFit(a.Perfect, w)
	goodFit := averageFit(a.Good, w)

	var base float64
	switch best := math.Max(perfectFit, goodFit); {
	case perfectFit >= PerfectFitThreshold:
		base = band(perfectFit, PerfectFitThreshold, 1, PerfectBandMin, PerfectBandMax)
	case goodFit >= GoodFitThreshold:
		base = band(goodFit, GoodFitThreshold, 1, GoodBandMin, GoodBandMax)
	case best >= FairFitThreshold:
		base = band(best, FairFitThreshold, PerfectFitThreshold, FairBandMin, FairBandMax)
	default:
		base = FloorScore
	}

	base -= PoorPenaltyMax * poorShare(a.Poor, w)
	return clampScore(base)
}

// Score is BaseScore scaled by the boost policy, rounded and clamped to
// 0..100. A nil policy applies no boost.
func Score(a *catalog.Activity, w types.WeatherRecord, ctx ScoreContext, boost BoostPolicy) int {
	base := float64(BaseScore(a, w, ctx))
	if boost == nil {
		return clampScore(base)
	}
	return clampScore(base * boost.Multiplier(a, ctx))
}

// averageFit is the mean condition score over the list; an empty list fits 0.
func averageFit(cs []conditions.Condition, w types.WeatherRecord) float64 {
	if len(cs) == 0 {
		return 0
	}
	var sum float64
	for _, c := range cs {
		sum += conditions.Score(c, w)
	}
	return sum / float64(len(cs))
}

func poorShare(cs []conditions.Condition, w types.WeatherRecord) float64 {
	if len(cs) == 0 {
		return 0
	}
	hits := 0
	for _, c := range cs {
		if conditions.Score(c, w) >= PoorConfidence {
			hits++
		}
	}
	return float64(hits) / float64(len(cs))
}

// band maps fit in [lo, hi] linearly onto [from, to], capped at to.
func band(fit, lo, hi float64, from, to int) float64 {
	f := (fit - lo) / (hi - lo)
	if f > 1 {
		f = 1
	}
	return float64(from) + f*float64(to-from)
}

func clampScore(f float64) int {
	r := int(math.Round(f))
	switch {
	case r < 0:
		return 0
	case r > 100:
		return 100
	default:
		return r
	}
}
