package engine

import (
	"sort"
	"time"

	"fairweather/internal/catalog"
	"fairweather/internal/types"
)

// DefaultMaxSuggestions caps a day's suggestion list.
const DefaultMaxSuggestions = 10

// AggregateOptions tunes Aggregate. The zero value is usable.
type AggregateOptions struct {
	// MaxSuggestions caps each day's list; zero or less means
	// DefaultMaxSuggestions.
	MaxSuggestions int
	// Now is the moment the request is made, used for context tags when
	// ordering indoor activities.
	Now time.Time
	// Moods are added to the context tags.
	Moods []string
	// EveningStartHour; see EffectiveEveningStartHour.
	EveningStartHour int
}

func (o AggregateOptions) maxSuggestions() int {
	if o.MaxSuggestions <= 0 {
		return DefaultMaxSuggestions
	}
	return o.MaxSuggestions
}

func (o AggregateOptions) eveningStartHour() int {
	return EffectiveEveningStartHour(o.EveningStartHour)
}

// Aggregate builds the suggestion list for each forecast day, in input order.
// interests holds the activity ids the user cares about. A nil catalog yields
// no output.
func Aggregate(days []types.ForecastDay, interests []string, cat *catalog.Catalog, opts AggregateOptions) []types.DaySuggestions {
	out := make([]types.DaySuggestions, 0, len(days))
	if cat == nil {
		return out
	}
	set := interestSet(interests)
	for _, day := range days {
		out = append(out, aggregateDay(day, set, cat, opts))
	}
	return out
}

// AggregateDay is Aggregate for a single day.
func AggregateDay(day types.ForecastDay, interests []string, cat *catalog.Catalog, opts AggregateOptions) types.DaySuggestions {
	if cat == nil {
		return types.DaySuggestions{Date: day.Date, Suggestions: []types.Suggestion{}}
	}
	return aggregateDay(day, interestSet(interests), cat, opts)
}

func aggregateDay(day types.ForecastDay, interests map[string]struct{}, cat *catalog.Catalog, opts AggregateOptions) types.DaySuggestions {
	result := types.DaySuggestions{Date: day.Date, Suggestions: []types.Suggestion{}}

	date, err := day.ParseDate()
	if err != nil {
		return result
	}
	weather := day.CombinedWeather()

	var (
		perfect, indoor []*catalog.Activity
		good            []types.Suggestion
		alternatives    []string
	)
	for _, a := range cat.All() {
		if _, ok := interests[a.ID]; !ok || !a.InSeason(date.Month()) {
			continue
		}
		switch level := Classify(a, weather); level {
		case types.LevelPerfect:
			perfect = append(perfect, a)
		case types.LevelGood, types.LevelAcceptable:
			good = append(good, types.Suggestion{ActivityID: a.ID, Level: level})
		case types.LevelIndoor:
			indoor = append(indoor, a)
		}
		if a.WeatherSensitive && a.IndoorAlternative != "" {
			alternatives = append(alternatives, a.IndoorAlternative)
		}
	}

	if len(indoor) > 1 {
		tags := NewScoreContext(opts.Now, date, opts.Moods, opts.eveningStartHour()).Tags
		sort.SliceStable(indoor, func(i, j int) bool {
			return TagMatchScore(indoor[i].Tags, tags) > TagMatchScore(indoor[j].Tags, tags)
		})
	}

	b := newListBuilder(opts.maxSuggestions())
	for _, a := range perfect {
		b.add(a.ID, types.LevelPerfect)
	}
	for _, s := range good {
		b.add(s.ActivityID, s.Level)
	}
	for _, ref := range alternatives {
		alt, ok := cat.Resolve(ref)
		if !ok || !alt.InSeason(date.Month()) {
			continue
		}
		b.add(alt.ID, types.LevelIndoorAlternative)
	}
	for _, a := range indoor {
		b.add(a.ID, types.LevelIndoor)
	}

	result.Suggestions = b.items
	return result
}

// listBuilder appends suggestions while skipping duplicates and enforcing
// the cap.
type listBuilder struct {
	limit int
	seen  map[string]struct{}
	items []types.Suggestion
}

func newListBuilder(limit int) *listBuilder {
	return &listBuilder{limit: limit, seen: make(map[string]struct{}), items: []types.Suggestion{}}
}

func (b *listBuilder) add(id string, level types.SuitabilityLevel) {
	if len(b.items) >= b.limit {
		return
	}
	if _, dup := b.seen[id]; dup {
		return
	}
	b.seen[id] = struct{}{}
	b.items = append(b.items, types.Suggestion{ActivityID: id, Level: level})
}

func interestSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
