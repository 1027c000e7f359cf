// Package catalog holds the activity catalog: the static, immutable set of
// activity definitions the engine recommends from.
//
// Condition strings are parsed exactly once, when the catalog is built, and
// stored next to each definition. Malformed strings are kept (they evaluate
// as non-matching) and reported in the log.
package catalog

import (
	"log/slog"
	"strings"

	"fairweather/internal/conditions"
	"fairweather/internal/types"
)

// Activity is a catalog entry with its condition lists pre-parsed.
type Activity struct {
	types.ActivityDefinition

	Poor    []conditions.Condition
	Good    []conditions.Condition
	Perfect []conditions.Condition
}

// NewActivity compiles a single definition.
func NewActivity(def types.ActivityDefinition) *Activity {
	return &Activity{
		ActivityDefinition: def,
		Poor:               conditions.ParseAll(def.PoorConditions),
		Good:               conditions.ParseAll(def.GoodConditions),
		Perfect:            conditions.ParseAll(def.PerfectConditions),
	}
}

// MalformedConditions returns the raw text of every condition that failed to
// parse, across all three lists.
func (a *Activity) MalformedConditions() []string {
	var bad []string
	for _, list := range [][]conditions.Condition{a.Poor, a.Good, a.Perfect} {
		for _, c := range list {
			if !c.Valid() {
				bad = append(bad, c.Raw)
			}
		}
	}
	return bad
}

// Catalog is an ordered, read-only collection of activities. It is safe for
// concurrent use.
type Catalog struct {
	activities []*Activity
	byID       map[string]*Activity
	byName     map[string]*Activity
}

// New validates the definitions and builds a Catalog preserving their order.
// The logger may be nil.
func New(defs []types.ActivityDefinition, logger *slog.Logger) (*Catalog, error) {
	if err := Validate(defs); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Catalog{
		activities: make([]*Activity, 0, len(defs)),
		byID:       make(map[string]*Activity, len(defs)),
		byName:     make(map[string]*Activity, len(defs)),
	}
	for _, def := range defs {
		a := NewActivity(def)
		c.activities = append(c.activities, a)
		c.byID[a.ID] = a
		name := normalizeName(a.Name)
		if _, taken := c.byName[name]; !taken {
			c.byName[name] = a
		}
		for _, raw := range a.MalformedConditions() {
			logger.Warn("malformed activity condition will never match",
				"activity_id", a.ID,
				"condition", raw,
			)
		}
	}

	for _, a := range c.activities {
		if a.IndoorAlternative == "" {
			continue
		}
		if _, ok := c.Resolve(a.IndoorAlternative); !ok {
			logger.Warn("indoor alternative does not resolve to a catalog activity",
				"activity_id", a.ID,
				"indoor_alternative", a.IndoorAlternative,
			)
		}
	}

	return c, nil
}

// All returns the activities in catalog order. The slice is a copy; the
// activities themselves must not be modified.
func (c *Catalog) All() []*Activity {
	if c == nil {
		return nil
	}
	out := make([]*Activity, len(c.activities))
	copy(out, c.activities)
	return out
}

// Len returns the number of activities.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.activities)
}

// Get looks an activity up by id.
func (c *Catalog) Get(id string) (*Activity, bool) {
	if c == nil {
		return nil, false
	}
	a, ok := c.byID[id]
	return a, ok
}

// Resolve finds an activity by id, falling back to a case-insensitive match
// on its display name. Indoor alternatives in hand-written catalogs are
// referenced either way.
func (c *Catalog) Resolve(ref string) (*Activity, bool) {
	if c == nil {
		return nil, false
	}
	if a, ok := c.byID[ref]; ok {
		return a, true
	}
	a, ok := c.byName[normalizeName(ref)]
	return a, ok
}

// Definitions returns the raw definitions in catalog order.
func (c *Catalog) Definitions() []types.ActivityDefinition {
	if c == nil {
		return nil
	}
	defs := make([]types.ActivityDefinition, len(c.activities))
	for i, a := range c.activities {
		defs[i] = a.ActivityDefinition
	}
	return defs
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
