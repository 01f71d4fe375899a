package domain

import "time"

// LookbackFeatures are the 13 history-derived values for a (unit, date):
// ten yesterday point values plus three rolling aggregates.
type LookbackFeatures struct {
	PrecipitationSumT1       float64
	WindSpeedMaxT1           float64
	WindGustsMaxT1           float64
	PressureMinT1            float64
	TemperatureMaxT1         float64
	HumidityMeanT1           float64
	CloudCoverMaxT1          float64
	DewPointMeanT1           float64
	ApparentTemperatureMaxT1 float64
	WeatherCodeT1            float64

	PrecipSum3d float64
	PrecipSum7d float64
	WindMax7d   float64
}

// Lookback computes historical features for a unit and target date.
//
// Yesterday's point values fall back to the typed defaults when the archive
// has no entry for date-1. The rolling windows instead skip absent days
// entirely, so an empty window yields 0.0 for both the sums and the max.
// The asymmetry is intentional: the first day of any collected range has no
// prior data and the aggregates must degrade instead of going null.
func Lookback(archive *Archive, unit string, date time.Time) LookbackFeatures {
	var f LookbackFeatures

	if rec, ok := archive.Lookup(unit, date.AddDate(0, 0, -1)); ok {
		f.PrecipitationSumT1 = orZero(rec.PrecipitationSum)
		f.WindSpeedMaxT1 = orZero(rec.WindSpeedMax)
		f.WindGustsMaxT1 = orZero(rec.WindGustsMax)
		f.PressureMinT1 = orDefault(rec.PressureMin, defaultPressure)
		f.TemperatureMaxT1 = orDefault(rec.TemperatureMax, defaultTemperature)
		f.HumidityMeanT1 = orDefault(rec.HumidityMean, defaultHumidity)
		f.CloudCoverMaxT1 = orDefault(rec.CloudCoverMax, defaultCloudCover)
		f.DewPointMeanT1 = orDefault(rec.DewPointMean, defaultDewPoint)
		f.ApparentTemperatureMaxT1 = orDefault(rec.ApparentTemperatureMax, defaultTemperature)
		f.WeatherCodeT1 = orZero(rec.WeatherCode)
	} else {
		f.PressureMinT1 = defaultPressure
		f.TemperatureMaxT1 = defaultTemperature
		f.HumidityMeanT1 = defaultHumidity
		f.CloudCoverMaxT1 = defaultCloudCover
		f.DewPointMeanT1 = defaultDewPoint
		f.ApparentTemperatureMaxT1 = defaultTemperature
	}

	for i := 1; i <= 7; i++ {
		rec, ok := archive.Lookup(unit, date.AddDate(0, 0, -i))
		if !ok {
			continue
		}
		precip := orZero(rec.PrecipitationSum)
		wind := orZero(rec.WindSpeedMax)

		if i <= 3 {
			f.PrecipSum3d += precip
		}
		f.PrecipSum7d += precip
		if wind > f.WindMax7d {
			f.WindMax7d = wind
		}
	}

	return f
}
