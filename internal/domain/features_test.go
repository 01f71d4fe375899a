package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureNamesContract(t *testing.T) {
	require.Len(t, FeatureNames, FeatureCount)

	// Spot-check the pinned ordering the classifier was trained against.
	assert.Equal(t, "year", FeatureNames[0])
	assert.Equal(t, "lgu_id", FeatureNames[8])
	assert.Equal(t, "mean_flood_risk_score", FeatureNames[9])
	assert.Equal(t, "hist_precipitation_sum_t1", FeatureNames[10])
	assert.Equal(t, "hist_precip_sum_7d", FeatureNames[20])
	assert.Equal(t, "hist_precip_sum_3d", FeatureNames[21])
	assert.Equal(t, "fcst_precipitation_sum", FeatureNames[23])
	assert.Equal(t, "fcst_cape_max", FeatureNames[32])

	seen := map[string]bool{}
	for _, name := range FeatureNames {
		assert.False(t, seen[name], "duplicate feature name %q", name)
		seen[name] = true
	}
}

func TestBuildFeatureVector(t *testing.T) {
	units := DefaultUnitTable()
	target := date(2025, time.September, 26)

	t.Run("full inputs", func(t *testing.T) {
		a := archiveOf(t, WeatherRecord{
			Unit:             "Quezon City",
			Date:             "2025-09-25",
			PrecipitationSum: f64(12),
			WindSpeedMax:     f64(38),
		})
		risk := 0.8
		forecast := &WeatherRecord{
			Unit:             "Quezon City",
			Date:             "2025-09-26",
			Provenance:       ProvenanceForecast,
			PrecipitationSum: f64(65),
			WindSpeedMax:     f64(70),
		}

		v, err := BuildFeatureVector(BuilderInput{
			Unit:      "Quezon City",
			Date:      target,
			Units:     units,
			Archive:   a,
			Forecast:  forecast,
			Holidays:  HolidaySet{},
			FloodRisk: &risk,
		})
		require.NoError(t, err)

		require.NoError(t, v.Validate())
		assert.Equal(t, "Quezon City", v.Unit)
		assert.Equal(t, "2025-09-26", v.Date)
		require.Len(t, v.Values, FeatureCount)

		got := func(name string) float64 {
			val, ok := v.Value(name)
			require.True(t, ok, "feature %q", name)
			return val
		}
		assert.Equal(t, 2025.0, got("year"))
		assert.Equal(t, 13.0, got("lgu_id"))
		assert.Equal(t, 0.8, got("mean_flood_risk_score"))
		assert.Equal(t, 12.0, got("hist_precipitation_sum_t1"))
		assert.Equal(t, 38.0, got("hist_wind_max_7d"))
		assert.Equal(t, 65.0, got("fcst_precipitation_sum"))
		assert.Equal(t, 70.0, got("fcst_wind_speed_max"))
	})

	t.Run("nil forecast takes typed defaults", func(t *testing.T) {
		v, err := BuildFeatureVector(BuilderInput{
			Unit:     "Manila",
			Date:     target,
			Units:    units,
			Archive:  archiveOf(t),
			Holidays: HolidaySet{},
		})
		require.NoError(t, err)

		got := func(name string) float64 {
			val, ok := v.Value(name)
			require.True(t, ok)
			return val
		}
		assert.Equal(t, 0.0, got("fcst_precipitation_sum"))
		assert.Equal(t, 1010.0, got("fcst_pressure_msl_min"))
		assert.Equal(t, 30.0, got("fcst_temperature_max"))
		assert.Equal(t, 70.0, got("fcst_relative_humidity_mean"))
		assert.Equal(t, 50.0, got("fcst_cloud_cover_max"))
		assert.Equal(t, 24.0, got("fcst_dew_point_mean"))
		assert.Equal(t, 0.0, got("fcst_cape_max"))
		assert.Equal(t, 0.5, got("mean_flood_risk_score"))
	})

	t.Run("unknown unit", func(t *testing.T) {
		_, err := BuildFeatureVector(BuilderInput{
			Unit:     "Cebu City",
			Date:     target,
			Units:    units,
			Archive:  archiveOf(t),
			Holidays: HolidaySet{},
		})
		assert.ErrorIs(t, err, ErrUnknownUnit)
	})
}

func TestFeatureVectorValidate(t *testing.T) {
	v := FeatureVector{Unit: "Manila", Date: "2025-09-26", Values: make([]float64, 32)}
	assert.ErrorIs(t, v.Validate(), ErrSchemaViolation)

	v.Values = make([]float64, FeatureCount)
	assert.NoError(t, v.Validate())
}

func TestFeatureVectorValue(t *testing.T) {
	v := FeatureVector{Values: make([]float64, FeatureCount)}
	v.Values[8] = 7

	val, ok := v.Value("lgu_id")
	assert.True(t, ok)
	assert.Equal(t, 7.0, val)

	_, ok = v.Value("no_such_feature")
	assert.False(t, ok)
}
