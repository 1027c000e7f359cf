// Package conditions parses and evaluates the condition strings used by the
// activity catalog, such as "temperature>15" or "windSpeed=5..15".
//
// Parsing never fails loudly: a string that is neither a range nor a
// comparison yields a Condition of KindMalformed, which evaluates as a
// non-match and scores neutral. A typo in the catalog must never crash
// evaluation.
package conditions

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformed is returned by ParseStrict for strings that match no
// condition form.
var ErrMalformed = errors.New("malformed condition")

// Kind identifies the form of a parsed condition.
type Kind int

const (
	KindMalformed Kind = iota
	KindComparison
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindComparison:
		return "comparison"
	case KindRange:
		return "range"
	default:
		return "malformed"
	}
}

// Operator is a comparison operator.
type Operator string

const (
	OpLessThan      Operator = "<"
	OpLessThanEq    Operator = "<="
	OpGreaterThan   Operator = ">"
	OpGreaterThanEq Operator = ">="
	OpEqual         Operator = "="
	OpStrictEqual   Operator = "=="
	OpNotEqual      Operator = "!="
)

// Condition is a parsed condition string. Attribute holds the raw token from
// the string; alias normalization happens at evaluation time.
type Condition struct {
	Raw       string
	Kind      Kind
	Attribute string
	Operator  Operator
	Threshold float64
	Min       float64
	Max       float64
}

// conditionJSON is the wire form of a Condition. Comparisons carry
// operator and threshold, ranges carry min and max; zero bounds are kept.
type conditionJSON struct {
	Raw       string   `json:"raw"`
	Attribute string   `json:"attribute,omitempty"`
	Operator  Operator `json:"operator,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (c Condition) MarshalJSON() ([]byte, error) {
	out := conditionJSON{Raw: c.Raw}
	switch c.Kind {
	case KindComparison:
		out.Attribute = c.Attribute
		out.Operator = c.Operator
		out.Threshold = &c.Threshold
	case KindRange:
		out.Attribute = c.Attribute
		out.Min = &c.Min
		out.Max = &c.Max
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. The raw text is authoritative
// and is parsed again; the structured fields are ignored.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var in conditionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = Parse(in.Raw)
	return nil
}

const number = `(-?\d+(?:\.\d+)?)`

var (
	// The range form is tried first; the comparison pattern would otherwise
	// consume "=" and fail on the "..".
	rangePattern      = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*` + number + `\s*\.\.\s*` + number + `$`)
	comparisonPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(<=|>=|==|!=|<|>|=)\s*` + number + `$`)
)

// Parse converts a condition string into a Condition. Strings matching no
// form, and ranges whose minimum exceeds the maximum, come back as
// KindMalformed.
func Parse(s string) Condition {
	c, _ := ParseStrict(s)
	return c
}

// ParseStrict is Parse with an error describing why a string is malformed.
// The returned Condition is always usable.
func ParseStrict(s string) (Condition, error) {
	trimmed := strings.TrimSpace(s)
	c := Condition{Raw: s, Kind: KindMalformed}

	if m := rangePattern.FindStringSubmatch(trimmed); m != nil {
		lo, errLo := strconv.ParseFloat(m[2], 64)
		hi, errHi := strconv.ParseFloat(m[3], 64)
		if errLo != nil || errHi != nil {
			return c, fmt.Errorf("%w: %q: bad range bound", ErrMalformed, s)
		}
		if lo > hi {
			return c, fmt.Errorf("%w: %q: range minimum exceeds maximum", ErrMalformed, s)
		}
		c.Kind = KindRange
		c.Attribute = m[1]
		c.Min = lo
		c.Max = hi
		return c, nil
	}

	if m := comparisonPattern.FindStringSubmatch(trimmed); m != nil {
		t, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return c, fmt.Errorf("%w: %q: bad threshold", ErrMalformed, s)
		}
		c.Kind = KindComparison
		c.Attribute = m[1]
		c.Operator = Operator(m[2])
		c.Threshold = t
		return c, nil
	}

	return c, fmt.Errorf("%w: %q", ErrMalformed, s)
}

// ParseAll parses a list of condition strings, preserving order.
func ParseAll(ss []string) []Condition {
	if len(ss) == 0 {
		return nil
	}
	out := make([]Condition, len(ss))
	for i, s := range ss {
		out[i] = Parse(s)
	}
	return out
}

// Valid reports whether the condition parsed into a usable form.
func (c Condition) Valid() bool {
	return c.Kind != KindMalformed
}

// String renders the condition in canonical form. Malformed conditions
// render as their raw text.
func (c Condition) String() string {
	switch c.Kind {
	case KindRange:
		return c.Attribute + "=" + formatFloat(c.Min) + ".." + formatFloat(c.Max)
	case KindComparison:
		return c.Attribute + string(c.Operator) + formatFloat(c.Threshold)
	default:
		return c.Raw
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
