package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlMapping = `
activities:
  - id: kayak
    name: Kayaking
    weatherSensitive: true
    tags: [water, weekend]
    poorConditions: ["windSpeed>30"]
    perfectConditions: ["waveHeight<0.5"]
    seasonalMonths: [5, 6, 7, 8]
  - id: museum
    name: Museum
`

const yamlSequence = `
- id: kayak
  name: Kayaking
- id: museum
  name: Museum
`

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path       string
		format     Format
		compressed bool
	}{
		{"catalog.yaml", FormatYAML, false},
		{"catalog.yml", FormatYAML, false},
		{"dir/catalog.JSON", FormatJSON, false},
		{"catalogs/v2/activities.json.zst", FormatJSON, true},
		{"activities.yaml.zst", FormatYAML, true},
		{"activities", FormatYAML, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, c := FormatFromPath(tt.path)
			assert.Equal(t, tt.format, f)
			assert.Equal(t, tt.compressed, c)
		})
	}
}

func TestDecode_YAMLMapping(t *testing.T) {
	defs, err := Decode(strings.NewReader(yamlMapping), FormatYAML)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, "kayak", defs[0].ID)
	assert.True(t, defs[0].WeatherSensitive)
	assert.Equal(t, []string{"water", "weekend"}, defs[0].Tags)
	assert.Equal(t, []string{"waveHeight<0.5"}, defs[0].PerfectConditions)
	assert.Equal(t, []int{5, 6, 7, 8}, defs[0].SeasonalMonths)
	assert.False(t, defs[1].WeatherSensitive)
}

func TestDecode_YAMLSequence(t *testing.T) {
	defs, err := Decode(strings.NewReader(yamlSequence), FormatYAML)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "museum", defs[1].ID)
}

func TestDecode_JSON(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		defs, err := Decode(strings.NewReader(`{"activities":[{"id":"a","name":"A","indoorAlternative":"b"}]}`), FormatJSON)
		require.NoError(t, err)
		require.Len(t, defs, 1)
		assert.Equal(t, "b", defs[0].IndoorAlternative)
	})
	t.Run("list", func(t *testing.T) {
		defs, err := Decode(strings.NewReader(` [{"id":"a","name":"A"},{"id":"b","name":"B"}]`), FormatJSON)
		require.NoError(t, err)
		assert.Len(t, defs, 2)
	})
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader("   \n"), FormatYAML)
	assert.ErrorContains(t, err, "empty")

	_, err = Decode(strings.NewReader("{not json"), FormatJSON)
	assert.ErrorContains(t, err, "could not be decoded")

	_, err = Decode(strings.NewReader("just a scalar"), FormatYAML)
	assert.Error(t, err)
}

func compressZstd(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func TestDecodeBlob_Compressed(t *testing.T) {
	blob := compressZstd(t, []byte(yamlMapping))

	defs, err := decodeBlob("activities.yaml.zst", bytes.NewReader(blob))
	require.NoError(t, err)
	assert.Len(t, defs, 2)
}

func TestDecodeBlob_CorruptCompressed(t *testing.T) {
	_, err := decodeBlob("activities.yaml.zst", bytes.NewReader([]byte("definitely not zstd")))
	assert.Error(t, err)
}
