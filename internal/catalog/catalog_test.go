package catalog

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairweather/internal/conditions"
	"fairweather/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sampleDefs() []types.ActivityDefinition {
	return []types.ActivityDefinition{
		{
			ID:                "running",
			Name:              "Running",
			Category:          "sport",
			WeatherSensitive:  true,
			Tags:              []string{"Morning", "quick"},
			PoorConditions:    []string{"precipitation>5"},
			GoodConditions:    []string{"temperature=10..25"},
			PerfectConditions: []string{"temperature=12..18", "windSpeed<15"},
			IndoorAlternative: "Gym Workout",
		},
		{
			ID:               "gym",
			Name:             "Gym Workout",
			Category:         "indoor",
			WeatherSensitive: false,
		},
	}
}

func TestNew_ParsesConditionsOnce(t *testing.T) {
	c, err := New(sampleDefs(), testLogger())
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	a, ok := c.Get("running")
	require.True(t, ok)
	require.Len(t, a.Perfect, 2)
	assert.Equal(t, conditions.KindRange, a.Perfect[0].Kind)
	assert.Equal(t, conditions.KindComparison, a.Perfect[1].Kind)
	assert.Len(t, a.Poor, 1)
	assert.Empty(t, a.MalformedConditions())
}

func TestNew_KeepsMalformedConditions(t *testing.T) {
	defs := sampleDefs()
	defs[0].GoodConditions = []string{"temperature=10..25", "sunny and warm"}

	c, err := New(defs, testLogger())
	require.NoError(t, err)

	a, _ := c.Get("running")
	require.Len(t, a.Good, 2)
	assert.Equal(t, []string{"sunny and warm"}, a.MalformedConditions())
}

func TestNew_PreservesOrder(t *testing.T) {
	c, err := New(sampleDefs(), nil)
	require.NoError(t, err)

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "running", all[0].ID)
	assert.Equal(t, "gym", all[1].ID)

	defs := c.Definitions()
	assert.Equal(t, "running", defs[0].ID)
}

func TestResolve(t *testing.T) {
	c, err := New(sampleDefs(), testLogger())
	require.NoError(t, err)

	tests := []struct {
		name   string
		ref    string
		wantID string
		found  bool
	}{
		{"by id", "gym", "gym", true},
		{"by exact name", "Gym Workout", "gym", true},
		{"by name ignoring case", "gym workout", "gym", true},
		{"by name with spaces", "  GYM WORKOUT ", "gym", true},
		{"unknown", "climbing hall", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := c.Resolve(tt.ref)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.wantID, a.ID)
			}
		})
	}
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.All())
	_, ok := c.Get("x")
	assert.False(t, ok)
	_, ok = c.Resolve("x")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		defs := sampleDefs()
		defs[1].ID = ""
		err := Validate(defs)
		require.Error(t, err)

		var appErr *types.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, types.ErrCodeValidationInvalidCatalog, appErr.Code)
		assert.Equal(t, 1, appErr.Details["index"])
	})

	t.Run("month out of range", func(t *testing.T) {
		defs := sampleDefs()
		defs[0].SeasonalMonths = []int{6, 13}
		err := Validate(defs)
		require.Error(t, err)
	})

	t.Run("duplicate id", func(t *testing.T) {
		defs := sampleDefs()
		defs[1].ID = "running"
		err := Validate(defs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate activity id")
	})

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Validate(sampleDefs()))
	})
}
