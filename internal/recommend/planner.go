// Package recommend plans suggestions across a forecast: it runs the engine
// for every day, scores what the aggregator returns and picks a hero.
package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fairweather/internal/catalog"
	"fairweather/internal/engine"
	"fairweather/internal/types"
)

// DefaultMaxDays bounds the number of forecast days in one request.
const DefaultMaxDays = 16

// dayConcurrencyLimit caps the per-day goroutines of a single plan.
const dayConcurrencyLimit = 8

// MetricsRecorder receives a summary of every plan. Implementations must be
// safe for concurrent use.
type MetricsRecorder interface {
	RecordPlan(ctx context.Context, stats types.PlanStats)
}

// Config tunes the planner. Zero values select the engine defaults.
type Config struct {
	MaxSuggestions   int
	EveningStartHour int
	MaxDays          int
}

// PlanRequest asks for suggestions over a run of forecast days.
type PlanRequest struct {
	Days      []types.ForecastDay `json:"days"`
	Interests []string            `json:"interests"`
	Moods     []string            `json:"moods,omitempty"`
	// Timezone is an IANA zone name; evening and phase are judged in it.
	Timezone string `json:"timezone,omitempty"`
	// At overrides the planner clock.
	At *time.Time `json:"at,omitempty"`
}

// DayPlan is the result for one forecast day.
type DayPlan struct {
	Date        string                    `json:"date"`
	Suggestions []engine.ScoredSuggestion `json:"suggestions"`
	Hero        *engine.ScoredSuggestion  `json:"hero,omitempty"`
	// NotEnoughOptions is set when the day has fewer suggestions than the cap.
	NotEnoughOptions bool `json:"notEnoughOptions"`
}

// Plan is the full response for a PlanRequest.
type Plan struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	IsEvening   bool      `json:"isEvening"`
	Days        []DayPlan `json:"days"`
}

// Planner produces plans from a fixed catalog.
type Planner struct {
	catalog *catalog.Catalog
	cfg     Config
	boost   engine.BoostPolicy
	metrics MetricsRecorder
	logger  *slog.Logger
	clock   types.Clock
}

// NewPlanner creates a Planner. boost, metrics, logger and clock may be nil.
func NewPlanner(
	cat *catalog.Catalog,
	cfg Config,
	boost engine.BoostPolicy,
	metrics MetricsRecorder,
	logger *slog.Logger,
	clock types.Clock,
) *Planner {
	if boost == nil {
		boost = engine.DefaultBoostPolicy{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = types.RealClock{}
	}
	if cfg.MaxDays <= 0 {
		cfg.MaxDays = DefaultMaxDays
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = engine.DefaultMaxSuggestions
	}
	cfg.EveningStartHour = engine.EffectiveEveningStartHour(cfg.EveningStartHour)
	return &Planner{
		catalog: cat,
		cfg:     cfg,
		boost:   boost,
		metrics: metrics,
		logger:  logger,
		clock:   clock,
	}
}

// Catalog returns the catalog the planner recommends from.
func (p *Planner) Catalog() *catalog.Catalog { return p.catalog }

// Validate checks a request against the planner limits.
func (p *Planner) Validate(req PlanRequest) error {
	if len(req.Days) == 0 {
		return types.NewAppError(types.ErrCodeValidationMissingField, "days must not be empty", nil)
	}
	if len(req.Days) > p.cfg.MaxDays {
		return types.NewAppErrorWithDetails(types.ErrCodeValidationTooManyDays,
			fmt.Sprintf("at most %d forecast days per request", p.cfg.MaxDays), nil,
			map[string]any{"max_days": p.cfg.MaxDays, "days": len(req.Days)})
	}
	if len(nonBlank(req.Interests)) == 0 {
		return types.NewAppError(types.ErrCodeValidationNoInterests, "interests must name at least one activity", nil)
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return types.NewAppError(types.ErrCodeValidationInvalidRequest,
				fmt.Sprintf("unknown timezone %q", req.Timezone), err)
		}
	}
	return nil
}

// Plan runs the engine for every requested day. Days are processed
// concurrently and returned in request order. Days whose date cannot be read
// come back empty rather than failing the plan.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*Plan, error) {
	if err := p.Validate(req); err != nil {
		return nil, err
	}
	start := time.Now()

	now := p.clock.Now()
	if req.At != nil {
		now = *req.At
	}
	if req.Timezone != "" {
		loc, _ := time.LoadLocation(req.Timezone)
		now = now.In(loc)
	}

	interests := nonBlank(req.Interests)
	opts := engine.AggregateOptions{
		MaxSuggestions:   p.cfg.MaxSuggestions,
		Now:              now,
		Moods:            req.Moods,
		EveningStartHour: p.cfg.EveningStartHour,
	}

	days := make([]DayPlan, len(req.Days))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(dayConcurrencyLimit)
	for i, day := range req.Days {
		i, day := i, day
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			days[i] = p.planDay(day, interests, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("recommend: planning cancelled: %w", err)
	}

	plan := &Plan{
		ID:          uuid.NewString(),
		GeneratedAt: now,
		IsEvening:   engine.NewScoreContext(now, time.Time{}, nil, p.cfg.EveningStartHour).IsEvening,
		Days:        days,
	}

	stats := summarize(plan, time.Since(start))
	p.logger.InfoContext(ctx, "plan generated",
		"plan_id", plan.ID,
		"request_id", types.GetRequestID(ctx),
		"days", stats.Days,
		"suggestions", stats.Suggestions,
		"empty_days", stats.EmptyDays,
		"duration_ms", stats.Latency.Milliseconds(),
	)
	if p.metrics != nil {
		p.metrics.RecordPlan(ctx, stats)
	}
	return plan, nil
}

func (p *Planner) planDay(day types.ForecastDay, interests []string, opts engine.AggregateOptions) DayPlan {
	agg := engine.AggregateDay(day, interests, p.catalog, opts)
	out := DayPlan{
		Date:             day.Date,
		Suggestions:      make([]engine.ScoredSuggestion, 0, len(agg.Suggestions)),
		NotEnoughOptions: len(agg.Suggestions) < opts.MaxSuggestions,
	}
	if len(agg.Suggestions) == 0 {
		return out
	}

	date, _ := day.ParseDate()
	weather := day.CombinedWeather()
	sctx := engine.NewScoreContext(opts.Now, date, opts.Moods, opts.EveningStartHour)

	for _, s := range agg.Suggestions {
		a, ok := p.catalog.Get(s.ActivityID)
		if !ok {
			continue
		}
		out.Suggestions = append(out.Suggestions, engine.ScoredSuggestion{
			ActivityID: s.ActivityID,
			Level:      s.Level,
			Score:      engine.Score(a, weather, sctx, p.boost),
		})
	}

	if hero, ok := engine.SelectHero(out.Suggestions, sctx.IsEvening); ok {
		out.Hero = &hero
	}
	return out
}

func summarize(plan *Plan, latency time.Duration) types.PlanStats {
	stats := types.PlanStats{
		Days:       len(plan.Days),
		HeroLevels: make(map[string]int),
		Latency:    latency,
	}
	for _, d := range plan.Days {
		stats.Suggestions += len(d.Suggestions)
		if len(d.Suggestions) == 0 {
			stats.EmptyDays++
		}
		if d.Hero != nil {
			stats.HeroLevels[d.Hero.Level.String()]++
		}
	}
	return stats
}

func nonBlank(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
