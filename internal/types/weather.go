package types

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
)

// Attribute names a weather or marine measurement.
type Attribute string

// Canonical attributes. Records may carry other names too; unknown names are
// kept as-is so new upstream fields need no code change.
const (
	AttrTemperature      Attribute = "temperature"
	AttrPrecipitation    Attribute = "precipitation"
	AttrWindSpeed        Attribute = "windSpeed"
	AttrClouds           Attribute = "clouds"
	AttrHumidity         Attribute = "humidity"
	AttrVisibility       Attribute = "visibility"
	AttrWaterTemperature Attribute = "waterTemperature"
	AttrWaveHeight       Attribute = "waveHeight"
	AttrSwellHeight      Attribute = "swellHeight"
	AttrSwellPeriod      Attribute = "swellPeriod"
	AttrWindDirection    Attribute = "windDirection"
	AttrSwellDirection   Attribute = "swellDirection"
)

// CanonicalAttributes lists the attributes the engine knows about, land first.
var CanonicalAttributes = []Attribute{
	AttrTemperature,
	AttrPrecipitation,
	AttrWindSpeed,
	AttrClouds,
	AttrHumidity,
	AttrVisibility,
	AttrWaterTemperature,
	AttrWaveHeight,
	AttrSwellHeight,
	AttrSwellPeriod,
	AttrWindDirection,
	AttrSwellDirection,
}

// attributeAliases maps the alternative spellings found in condition strings
// to canonical attribute names.
var attributeAliases = map[string]Attribute{
	"temp":              AttrTemperature,
	"rain":              AttrPrecipitation,
	"wind_speed":        AttrWindSpeed,
	"wind":              AttrWindSpeed,
	"cloud":             AttrClouds,
	"water_temperature": AttrWaterTemperature,
	"water_temp":        AttrWaterTemperature,
	"wave_height":       AttrWaveHeight,
	"swell_height":      AttrSwellHeight,
	"swell_period":      AttrSwellPeriod,
	"wind_direction":    AttrWindDirection,
	"swell_direction":   AttrSwellDirection,
}

// NormalizeAttribute resolves an attribute token to its canonical name.
// Tokens without an alias are returned unchanged.
func NormalizeAttribute(token string) Attribute {
	if a, ok := attributeAliases[token]; ok {
		return a
	}
	return Attribute(token)
}

// IsMarine reports whether the attribute is supplied by the marine forecast.
func (a Attribute) IsMarine() bool {
	switch a {
	case AttrWaterTemperature, AttrWaveHeight, AttrSwellHeight, AttrSwellPeriod, AttrSwellDirection:
		return true
	}
	return false
}

// WeatherRecord maps attribute names to measured values. A missing key means
// the value is unknown, which is not the same as a value of zero.
//
// JSON null values decode as missing keys.
type WeatherRecord map[Attribute]float64

// Get returns the value for the attribute (after alias normalization) and
// whether it is known. Records built with alias keys ({"temp": 15}) are
// found too; a canonical key wins over an alias.
func (w WeatherRecord) Get(attr Attribute) (float64, bool) {
	if w == nil {
		return 0, false
	}
	canonical := NormalizeAttribute(string(attr))
	if v, ok := w[canonical]; ok {
		return v, true
	}
	var (
		found bool
		key   Attribute
		val   float64
	)
	for k, v := range w {
		if NormalizeAttribute(string(k)) != canonical {
			continue
		}
		// Lowest key wins so lookups stay deterministic.
		if !found || k < key {
			found, key, val = true, k, v
		}
	}
	return val, found
}

// Has reports whether the attribute is known.
func (w WeatherRecord) Has(attr Attribute) bool {
	_, ok := w.Get(attr)
	return ok
}

// Normalized returns a copy of the record keyed by canonical attribute
// names. A canonical key wins over an alias for the same attribute.
func (w WeatherRecord) Normalized() WeatherRecord {
	out := make(WeatherRecord, len(w))
	for _, k := range w.Attributes() {
		canonical := NormalizeAttribute(string(k))
		if k != canonical {
			if _, taken := out[canonical]; taken {
				continue
			}
		}
		out[canonical] = w[k]
	}
	return out
}

// Merge returns a new record holding w's values overlaid with other's.
// Values in other override w; attributes only in w are kept. Keys are
// normalized, so an alias in other overrides the canonical key in w.
func (w WeatherRecord) Merge(other WeatherRecord) WeatherRecord {
	out := w.Normalized()
	for k, v := range other.Normalized() {
		out[k] = v
	}
	return out
}

// Attributes returns the known attribute names in sorted order.
func (w WeatherRecord) Attributes() []Attribute {
	attrs := make([]Attribute, 0, len(w))
	for k := range w {
		attrs = append(attrs, k)
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i] < attrs[j] })
	return attrs
}

// UnmarshalJSON decodes {"temperature": 12.5, "waveHeight": null}. Keys are
// normalized through the alias table; nulls and non-finite numbers are dropped.
func (w *WeatherRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(WeatherRecord, len(raw))
	for k, v := range raw {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		out[NormalizeAttribute(strings.TrimSpace(k))] = *v
	}
	*w = out
	return nil
}
