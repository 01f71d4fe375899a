package domain

import (
	"fmt"
	"time"
)

// Provenance tags where a weather record came from. Forecast data feeds the
// feature builder; actual observations exist only for weather validation and
// are never used as features for a future date.
type Provenance string

const (
	ProvenanceForecast Provenance = "forecast"
	ProvenanceActual   Provenance = "actual"
)

// WeatherRecord holds one day of Open-Meteo daily variables for one unit.
// Values are pointers because the upstream API reports nulls; defaults are
// substituted at feature-build time, not at parse time, so a missing reading
// stays distinguishable from a genuine zero.
type WeatherRecord struct {
	Unit       string     `json:"lgu"`
	Date       string     `json:"date"`
	Provenance Provenance `json:"provenance"`

	PrecipitationSum         *float64 `json:"precipitation_sum"`
	PrecipitationHours       *float64 `json:"precipitation_hours"`
	PrecipitationProbability *float64 `json:"precipitation_probability_max"`
	WindSpeedMax             *float64 `json:"wind_speed_10m_max"`
	WindGustsMax             *float64 `json:"wind_gusts_10m_max"`
	PressureMin              *float64 `json:"pressure_msl_min"`
	TemperatureMax           *float64 `json:"temperature_2m_max"`
	HumidityMean             *float64 `json:"relative_humidity_2m_mean"`
	CloudCoverMax            *float64 `json:"cloud_cover_max"`
	DewPointMean             *float64 `json:"dew_point_2m_mean"`
	ApparentTemperatureMax   *float64 `json:"apparent_temperature_max"`
	WeatherCode              *float64 `json:"weather_code"`
	CAPEMax                  *float64 `json:"cape_max"`
}

// Typed default values per weather variable, the single source of truth
// consumed by both the yesterday-lookup path and the same-day forecast path.
const (
	defaultPressure    = 1010.0
	defaultTemperature = 30.0
	defaultHumidity    = 70.0
	defaultCloudCover  = 50.0
	defaultDewPoint    = 24.0
	defaultFloodRisk   = 0.5
)

// orDefault dereferences a nullable reading, substituting the typed default.
func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// orZero is orDefault with the zero default shared by precipitation, wind,
// weather-code and CAPE variables.
func orZero(v *float64) float64 {
	return orDefault(v, 0)
}

type archiveKey struct {
	unit string
	date string
}

// Archive is a read-only weather archive indexed by (unit, date).
type Archive struct {
	records map[archiveKey]WeatherRecord
}

// BuildArchive indexes records by (unit, date), normalizing unit names first.
// Records missing either key component are schema violations: they are
// skipped and reported, never aborting the rest of the batch. Duplicate keys
// are first-wins, matching upsert behavior downstream.
func BuildArchive(records []WeatherRecord) (*Archive, []error) {
	a := &Archive{records: make(map[archiveKey]WeatherRecord, len(records))}
	var errs []error
	for i, rec := range records {
		if rec.Unit == "" || rec.Date == "" {
			errs = append(errs, fmt.Errorf("record %d (unit=%q date=%q): %w", i, rec.Unit, rec.Date, ErrSchemaViolation))
			continue
		}
		if _, err := time.Parse(DateLayout, rec.Date); err != nil {
			errs = append(errs, fmt.Errorf("record %d: bad date %q: %w", i, rec.Date, ErrSchemaViolation))
			continue
		}
		rec.Unit = NormalizeUnitName(rec.Unit)
		key := archiveKey{unit: rec.Unit, date: rec.Date}
		if _, exists := a.records[key]; exists {
			continue
		}
		a.records[key] = rec
	}
	return a, errs
}

// Lookup returns the record for a unit on a date.
func (a *Archive) Lookup(unit string, date time.Time) (WeatherRecord, bool) {
	rec, ok := a.records[archiveKey{unit: unit, date: date.Format(DateLayout)}]
	return rec, ok
}

// Len reports the number of indexed records.
func (a *Archive) Len() int { return len(a.records) }
