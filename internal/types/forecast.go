package types

import (
	"fmt"
	"time"
)

// ForecastDay is one day of forecast data supplied by the weather collaborator.
type ForecastDay struct {
	Date    string          `json:"date" validate:"required"`
	Weather WeatherRecord   `json:"weather"`
	Marine  []WeatherRecord `json:"marine,omitempty"`
}

// CombinedWeather returns the day's weather with the first marine record
// merged over it. Marine values override or add to land values; land-only
// attributes are kept.
func (d ForecastDay) CombinedWeather() WeatherRecord {
	if len(d.Marine) == 0 {
		return d.Weather.Merge(nil)
	}
	return d.Weather.Merge(d.Marine[0])
}

// dateLayouts are tried in order when reading a forecast date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate reads the day's calendar date. ISO dates and RFC 3339 timestamps
// are accepted; the time-of-day part is ignored.
func (d ForecastDay) ParseDate() (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, d.Date); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: unrecognised forecast date %q", ErrCodeValidationInvalidDate, d.Date)
}

// DaySuggestions is the ordered suggestion list for one forecast day.
type DaySuggestions struct {
	Date        string       `json:"date"`
	Suggestions []Suggestion `json:"suggestions"`
}
