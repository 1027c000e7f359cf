package conditions

import (
	"math"

	"fairweather/internal/types"
)

// Outcome is the tri-state result of checking a condition against a record.
type Outcome int

const (
	// Unknown means the attribute is absent from the record.
	Unknown Outcome = iota
	Satisfied
	Unsatisfied
)

func (o Outcome) String() string {
	switch o {
	case Satisfied:
		return "satisfied"
	case Unsatisfied:
		return "unsatisfied"
	default:
		return "unknown"
	}
}

// NeutralScore is the fit score for conditions that cannot be assessed.
const NeutralScore = 0.5

// rangeDecayWidths is how many range widths beyond a bound the range score
// takes to reach zero.
const rangeDecayWidths = 1.0

// Evaluate checks the condition against the record. Malformed conditions are
// Unsatisfied; a condition on an attribute the record does not carry is
// Unknown.
func Evaluate(c Condition, w types.WeatherRecord) Outcome {
	if !c.Valid() {
		return Unsatisfied
	}
	v, ok := w.Get(types.NormalizeAttribute(c.Attribute))
	if !ok {
		return Unknown
	}
	if holds(c, v) {
		return Satisfied
	}
	return Unsatisfied
}

// Matches is the strict check: an absent attribute does not match.
func Matches(c Condition, w types.WeatherRecord) bool {
	return Evaluate(c, w) == Satisfied
}

// MatchesSafe is the neutral check: an absent attribute passes, so missing
// sensor data never blocks an activity on its own. Malformed conditions still
// do not match.
func MatchesSafe(c Condition, w types.WeatherRecord) bool {
	return Evaluate(c, w) != Unsatisfied
}

func holds(c Condition, v float64) bool {
	if c.Kind == KindRange {
		return v >= c.Min && v <= c.Max
	}
	t := c.Threshold
	switch c.Operator {
	case OpLessThan:
		return v < t
	case OpLessThanEq:
		return v <= t
	case OpGreaterThan:
		return v > t
	case OpGreaterThanEq:
		return v >= t
	case OpEqual, OpStrictEqual:
		return v == t
	case OpNotEqual:
		return v != t
	}
	return false
}

// Score grades how well the record fits the condition, in [0, 1].
//
// Ranges score 1 at the midpoint and fall linearly to 0 one range width
// beyond either bound. Comparisons score 1 when satisfied and otherwise
// 1 - distance/max(|threshold|, 1), floored at 0. Absent attributes and
// malformed conditions score NeutralScore.
func Score(c Condition, w types.WeatherRecord) float64 {
	if !c.Valid() {
		return NeutralScore
	}
	v, ok := w.Get(types.NormalizeAttribute(c.Attribute))
	if !ok {
		return NeutralScore
	}

	if c.Kind == KindRange {
		return rangeScore(c.Min, c.Max, v)
	}

	if holds(c, v) {
		return 1
	}
	if c.Operator == OpNotEqual {
		return 0
	}
	return proximity(v, c.Threshold)
}

func rangeScore(lo, hi, v float64) float64 {
	width := hi - lo
	if width == 0 {
		if v == lo {
			return 1
		}
		return proximity(v, lo)
	}
	mid := (lo + hi) / 2
	reach := width/2 + rangeDecayWidths*width
	return clamp01(1 - math.Abs(v-mid)/reach)
}

func proximity(v, t float64) float64 {
	scale := math.Max(math.Abs(t), 1)
	return clamp01(1 - math.Abs(v-t)/scale)
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
