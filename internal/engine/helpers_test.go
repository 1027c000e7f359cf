package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fairweather/internal/catalog"
	"fairweather/internal/types"
)

func activity(def types.ActivityDefinition) *catalog.Activity {
	return catalog.NewActivity(def)
}

func weather(kv map[types.Attribute]float64) types.WeatherRecord {
	return types.WeatherRecord(kv)
}

func mustCatalog(t *testing.T, defs ...types.ActivityDefinition) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(defs, nil)
	require.NoError(t, err)
	return c
}
