package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func archiveOf(t *testing.T, records ...WeatherRecord) *Archive {
	t.Helper()
	a, errs := BuildArchive(records)
	require.Empty(t, errs)
	return a
}

func TestLookbackYesterdayPresent(t *testing.T) {
	target := date(2025, time.September, 26)
	a := archiveOf(t, WeatherRecord{
		Unit:             "Manila",
		Date:             "2025-09-25",
		PrecipitationSum: f64(18.5),
		WindSpeedMax:     f64(42),
		PressureMin:      f64(1004),
		TemperatureMax:   f64(31.2),
	})

	f := Lookback(a, "Manila", target)

	assert.Equal(t, 18.5, f.PrecipitationSumT1)
	assert.Equal(t, 42.0, f.WindSpeedMaxT1)
	assert.Equal(t, 1004.0, f.PressureMinT1)
	assert.Equal(t, 31.2, f.TemperatureMaxT1)
	// Null readings within a present record still take typed defaults.
	assert.Equal(t, 70.0, f.HumidityMeanT1)
	assert.Equal(t, 50.0, f.CloudCoverMaxT1)
	assert.Equal(t, 24.0, f.DewPointMeanT1)
	assert.Equal(t, 0.0, f.WindGustsMaxT1)
	assert.Equal(t, 0.0, f.WeatherCodeT1)
}

func TestLookbackYesterdayAbsent(t *testing.T) {
	target := date(2025, time.September, 26)
	a := archiveOf(t) // empty archive

	f := Lookback(a, "Manila", target)

	assert.Equal(t, 0.0, f.PrecipitationSumT1)
	assert.Equal(t, 0.0, f.WindSpeedMaxT1)
	assert.Equal(t, 1010.0, f.PressureMinT1)
	assert.Equal(t, 30.0, f.TemperatureMaxT1)
	assert.Equal(t, 70.0, f.HumidityMeanT1)
	assert.Equal(t, 50.0, f.CloudCoverMaxT1)
	assert.Equal(t, 24.0, f.DewPointMeanT1)
	assert.Equal(t, 30.0, f.ApparentTemperatureMaxT1)
}

func TestLookbackRollingWindowsSkipAbsentDays(t *testing.T) {
	target := date(2025, time.September, 26)

	// Only days -1, -3 and -6 exist; absent days contribute nothing rather
	// than a default.
	a := archiveOf(t,
		WeatherRecord{Unit: "Manila", Date: "2025-09-25", PrecipitationSum: f64(10), WindSpeedMax: f64(30)},
		WeatherRecord{Unit: "Manila", Date: "2025-09-23", PrecipitationSum: f64(20), WindSpeedMax: f64(55)},
		WeatherRecord{Unit: "Manila", Date: "2025-09-20", PrecipitationSum: f64(40), WindSpeedMax: f64(25)},
	)

	f := Lookback(a, "Manila", target)

	assert.Equal(t, 30.0, f.PrecipSum3d) // days -1 and -3
	assert.Equal(t, 70.0, f.PrecipSum7d) // all three
	assert.Equal(t, 55.0, f.WindMax7d)
}

func TestLookbackEmptyWindowYieldsZero(t *testing.T) {
	f := Lookback(archiveOf(t), "Manila", date(2025, time.September, 26))

	assert.Equal(t, 0.0, f.PrecipSum3d)
	assert.Equal(t, 0.0, f.PrecipSum7d)
	assert.Equal(t, 0.0, f.WindMax7d)
}

func TestLookbackIgnoresOtherUnits(t *testing.T) {
	target := date(2025, time.September, 26)
	a := archiveOf(t,
		WeatherRecord{Unit: "Pasig", Date: "2025-09-25", PrecipitationSum: f64(99), WindSpeedMax: f64(99)},
	)

	f := Lookback(a, "Manila", target)

	assert.Equal(t, 0.0, f.PrecipitationSumT1)
	assert.Equal(t, 0.0, f.PrecipSum7d)
}

func TestBuildArchive(t *testing.T) {
	t.Run("normalizes unit names", func(t *testing.T) {
		a, errs := BuildArchive([]WeatherRecord{
			{Unit: "las piã±as", Date: "2025-09-25", PrecipitationSum: f64(5)},
		})
		require.Empty(t, errs)

		rec, ok := a.Lookup("Las Piñas", date(2025, time.September, 25))
		require.True(t, ok)
		assert.Equal(t, 5.0, *rec.PrecipitationSum)
	})

	t.Run("rejects records missing keys", func(t *testing.T) {
		a, errs := BuildArchive([]WeatherRecord{
			{Unit: "", Date: "2025-09-25"},
			{Unit: "Manila", Date: ""},
			{Unit: "Manila", Date: "25-09-2025"},
			{Unit: "Manila", Date: "2025-09-25"},
		})

		assert.Len(t, errs, 3)
		for _, err := range errs {
			assert.ErrorIs(t, err, ErrSchemaViolation)
		}
		assert.Equal(t, 1, a.Len())
	})

	t.Run("duplicate keys are first-wins", func(t *testing.T) {
		a, errs := BuildArchive([]WeatherRecord{
			{Unit: "Manila", Date: "2025-09-25", PrecipitationSum: f64(1)},
			{Unit: "Manila", Date: "2025-09-25", PrecipitationSum: f64(2)},
		})
		require.Empty(t, errs)

		rec, ok := a.Lookup("Manila", date(2025, time.September, 25))
		require.True(t, ok)
		assert.Equal(t, 1.0, *rec.PrecipitationSum)
	})
}
