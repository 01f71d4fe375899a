package domain

import (
	"fmt"
	"time"
)

// FeatureCount is the exact vector length the trained classifier accepts.
const FeatureCount = 33

// FeatureNames enumerates the classifier's input features in their fixed
// order. Names and order are a contract shared with the trained artifact;
// any deviation invalidates its output.
var FeatureNames = []string{
	"year", "month", "day", "day_of_week", "is_rainy_season",
	"month_from_sy_start", "is_holiday", "is_school_day", "lgu_id",
	"mean_flood_risk_score", "hist_precipitation_sum_t1",
	"hist_wind_speed_max_t1", "hist_wind_gusts_max_t1",
	"hist_pressure_msl_min_t1", "hist_temperature_max_t1",
	"hist_relative_humidity_mean_t1", "hist_cloud_cover_max_t1",
	"hist_dew_point_mean_t1", "hist_apparent_temperature_max_t1",
	"hist_weather_code_t1", "hist_precip_sum_7d", "hist_precip_sum_3d",
	"hist_wind_max_7d", "fcst_precipitation_sum", "fcst_precipitation_hours",
	"fcst_wind_speed_max", "fcst_wind_gusts_max", "fcst_pressure_msl_min",
	"fcst_temperature_max", "fcst_relative_humidity_mean",
	"fcst_cloud_cover_max", "fcst_dew_point_mean", "fcst_cape_max",
}

var featureIndex = buildFeatureIndex()

func buildFeatureIndex() map[string]int {
	idx := make(map[string]int, len(FeatureNames))
	for i, name := range FeatureNames {
		idx[name] = i
	}
	return idx
}

// FeatureVector is the ordered numeric payload for one (unit, date), plus its
// key metadata outside the payload.
type FeatureVector struct {
	Unit   string    `json:"lgu"`
	Date   string    `json:"date"`
	Values []float64 `json:"values"`
}

// Validate checks the fixed-length contract.
func (v FeatureVector) Validate() error {
	if len(v.Values) != FeatureCount {
		return fmt.Errorf("feature vector for %s/%s has %d values, want %d: %w",
			v.Unit, v.Date, len(v.Values), FeatureCount, ErrSchemaViolation)
	}
	return nil
}

// Value returns the named feature's value.
func (v FeatureVector) Value(name string) (float64, bool) {
	i, ok := featureIndex[name]
	if !ok || i >= len(v.Values) {
		return 0, false
	}
	return v.Values[i], true
}

// Map returns the vector as a name-to-value map for serialization. Order is
// recoverable from FeatureNames.
func (v FeatureVector) Map() map[string]float64 {
	m := make(map[string]float64, len(v.Values))
	for i, val := range v.Values {
		if i < len(FeatureNames) {
			m[FeatureNames[i]] = val
		}
	}
	return m
}

// BuilderInput carries everything the feature builder needs for one
// (unit, date). Forecast is the same-day forecast record; nil means every
// forecast field takes its typed default. FloodRisk is the external flood
// score, defaulted to 0.5 when the source is unavailable.
type BuilderInput struct {
	Unit      string
	Date      time.Time
	Units     *UnitTable
	Archive   *Archive
	Forecast  *WeatherRecord
	Typhoon   TyphoonStatus
	Holidays  HolidaySet
	FloodRisk *float64
}

// BuildFeatureVector composes temporal, categorical, historical, and same-day
// forecast features into the fixed 33-value vector.
//
// The unit must already be canonical and present in the table; unknown units
// fail with ErrUnknownUnit rather than being coerced to an arbitrary index.
// A resulting vector of any length other than FeatureCount fails with
// ErrSchemaViolation: silent drift would make the classifier's output
// meaningless.
func BuildFeatureVector(in BuilderInput) (FeatureVector, error) {
	unitID, ok := in.Units.Index(in.Unit)
	if !ok {
		return FeatureVector{}, fmt.Errorf("unit %q: %w", in.Unit, ErrUnknownUnit)
	}

	temporal := Temporal(in.Date, in.Holidays)
	hist := Lookback(in.Archive, in.Unit, in.Date)

	values := make([]float64, 0, FeatureCount)
	values = append(values,
		float64(temporal.Year),
		float64(temporal.Month),
		float64(temporal.Day),
		float64(temporal.DayOfWeek),
		float64(temporal.IsRainySeason),
		float64(temporal.MonthFromSchoolYearStart),
		float64(temporal.IsHoliday),
		float64(temporal.IsSchoolDay),
		float64(unitID),
		orDefault(in.FloodRisk, defaultFloodRisk),
		hist.PrecipitationSumT1,
		hist.WindSpeedMaxT1,
		hist.WindGustsMaxT1,
		hist.PressureMinT1,
		hist.TemperatureMaxT1,
		hist.HumidityMeanT1,
		hist.CloudCoverMaxT1,
		hist.DewPointMeanT1,
		hist.ApparentTemperatureMaxT1,
		hist.WeatherCodeT1,
		hist.PrecipSum7d,
		hist.PrecipSum3d,
		hist.WindMax7d,
	)
	values = append(values, forecastValues(in.Forecast)...)

	v := FeatureVector{
		Unit:   in.Unit,
		Date:   in.Date.Format(DateLayout),
		Values: values,
	}
	if err := v.Validate(); err != nil {
		return FeatureVector{}, err
	}
	return v, nil
}

// forecastValues extracts the ten same-day forecast features, applying the
// shared typed defaults field by field; a nil record defaults them all.
func forecastValues(rec *WeatherRecord) []float64 {
	if rec == nil {
		rec = &WeatherRecord{}
	}
	return []float64{
		orZero(rec.PrecipitationSum),
		orZero(rec.PrecipitationHours),
		orZero(rec.WindSpeedMax),
		orZero(rec.WindGustsMax),
		orDefault(rec.PressureMin, defaultPressure),
		orDefault(rec.TemperatureMax, defaultTemperature),
		orDefault(rec.HumidityMean, defaultHumidity),
		orDefault(rec.CloudCoverMax, defaultCloudCover),
		orDefault(rec.DewPointMean, defaultDewPoint),
		orZero(rec.CAPEMax),
	}
}
