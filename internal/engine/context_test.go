package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairweather/internal/types"
)

func at(date string, hour, minute int) time.Time {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

func TestPhaseAt(t *testing.T) {
	tests := []struct {
		hour int
		want DayPhase
	}{
		{0, PhaseNight},
		{4, PhaseNight},
		{5, PhaseMorning},
		{11, PhaseMorning},
		{12, PhaseAfternoon},
		{16, PhaseAfternoon},
		{17, PhaseEvening},
		{21, PhaseEvening},
		{22, PhaseNight},
		{23, PhaseNight},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PhaseAt(tt.hour), "hour %d", tt.hour)
	}
}

func TestNewScoreContext(t *testing.T) {
	now := at("2026-10-14", 19, 30) // Wednesday
	ctx := NewScoreContext(now, at("2026-10-17", 0, 0), []string{"Relaxed", "grumpy", "relaxed", " social "}, 17)

	assert.Equal(t, time.Saturday, ctx.Weekday)
	assert.True(t, ctx.Weekend)
	assert.Equal(t, PhaseEvening, ctx.Phase)
	assert.True(t, ctx.IsEvening)
	assert.Equal(t, []string{"saturday", "weekend", "evening", "relaxed", "social"}, ctx.Tags)
}

func TestNewScoreContext_EveningStartHour(t *testing.T) {
	now := at("2026-10-14", 19, 30)
	date := at("2026-10-14", 0, 0)

	assert.False(t, NewScoreContext(now, date, nil, 20).IsEvening)
	assert.True(t, NewScoreContext(now, date, nil, 99).IsEvening, "out-of-range hour falls back to the default")
	assert.True(t, NewScoreContext(at("2026-10-14", 2, 0), date, nil, 20).IsEvening, "small hours count as evening")
	assert.False(t, NewScoreContext(at("2026-10-14", 9, 0), date, nil, 17).IsEvening)
}

func TestNewScoreContext_ZeroEveningStartHourUsesDefault(t *testing.T) {
	date := at("2026-10-14", 0, 0)

	assert.False(t, NewScoreContext(at("2026-10-14", 12, 0), date, nil, 0).IsEvening)
	assert.False(t, NewScoreContext(at("2026-10-14", 9, 0), date, nil, -3).IsEvening)
	assert.True(t, NewScoreContext(at("2026-10-14", 17, 0), date, nil, 0).IsEvening)
}

func TestEffectiveEveningStartHour(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultEveningStartHour},
		{-1, DefaultEveningStartHour},
		{24, DefaultEveningStartHour},
		{1, 1},
		{20, 20},
		{23, 23},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EffectiveEveningStartHour(tt.in), "hour %d", tt.in)
		assert.Equal(t, tt.want, AggregateOptions{EveningStartHour: tt.in}.eveningStartHour(), "aggregate options hour %d", tt.in)
	}
}

func TestNewScoreContext_ZeroDateUsesNow(t *testing.T) {
	ctx := NewScoreContext(at("2026-10-14", 9, 0), time.Time{}, nil, 17)
	assert.Equal(t, time.Wednesday, ctx.Weekday)
	assert.False(t, ctx.Weekend)
	assert.Equal(t, []string{"wednesday", "weekday", "morning"}, ctx.Tags)
}

func TestTagMatchScore(t *testing.T) {
	ctxTags := []string{"saturday", "weekend", "evening"}

	assert.InDelta(t, 1.0/3, TagMatchScore([]string{"Evening", "outdoor"}, ctxTags), 1e-9)
	assert.InDelta(t, 2.0/3, TagMatchScore([]string{"weekend", "evening"}, ctxTags), 1e-9)
	assert.Zero(t, TagMatchScore(nil, ctxTags))
	assert.Zero(t, TagMatchScore([]string{"evening"}, nil))
}

func TestDefaultBoostPolicy(t *testing.T) {
	policy := DefaultBoostPolicy{}
	wednesdayEvening := NewScoreContext(at("2026-10-14", 19, 0), at("2026-10-14", 0, 0), nil, 17)
	wednesdayMorning := NewScoreContext(at("2026-10-14", 9, 0), at("2026-10-14", 0, 0), nil, 17)
	saturdayMorning := NewScoreContext(at("2026-10-17", 10, 0), at("2026-10-17", 0, 0), nil, 17)

	tests := []struct {
		name string
		tags []string
		ctx  ScoreContext
		want float64
	}{
		{"evening activity in the evening", []string{"sunset"}, wednesdayEvening, EveningBoost},
		{"daytime activity in the evening", []string{"sunrise"}, wednesdayEvening, DaytimeOnlyPenalty},
		{"evening activity in the morning", []string{"sunset"}, wednesdayMorning, 1},
		{"weekend outing at the weekend", []string{"family"}, saturdayMorning, WeekendBoost},
		{"weekend outing with tag overlap", []string{"weekend"}, saturdayMorning, WeekendBoost * 1.1},
		{"after work on a weekday evening", []string{"quick"}, wednesdayEvening, AfterWorkBoost},
		{"after work in the morning", []string{"quick"}, wednesdayMorning, 1},
		{"untagged", nil, saturdayMorning, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := activity(types.ActivityDefinition{ID: "a", Name: "A", Tags: tt.tags})
			assert.InDelta(t, tt.want, policy.Multiplier(a, tt.ctx), 1e-9)
		})
	}
}

func TestDefaultBoostPolicy_OverlapCapped(t *testing.T) {
	ctx := NewScoreContext(at("2026-10-14", 9, 0), at("2026-10-14", 0, 0), []string{"relaxed", "social", "calm"}, 17)
	require.Len(t, ctx.Tags, 6)

	a := activity(types.ActivityDefinition{
		ID: "a", Name: "A",
		Tags: []string{"wednesday", "weekday", "morning", "relaxed", "social", "calm"},
	})
	assert.InDelta(t, TagOverlapCap, DefaultBoostPolicy{}.Multiplier(a, ctx), 1e-9)
}
