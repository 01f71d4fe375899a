// Command genmock generates a deterministic set of JSON fixtures for the
// prediction pipeline: a weather archive, a forecast, PAGASA bulletin
// snapshots, flood risk scores, a holiday calendar, predictions, and matching
// recorded outcomes. It runs the actual feature builder and the rule-based
// scorer so the fixtures match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/mock
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/stormsignal/suspension-pipeline/internal/domain"
	"github.com/stormsignal/suspension-pipeline/internal/scorer"
)

const (
	archiveDays = 14
	targetDate  = "2025-09-26"
)

var baseDate = time.Date(2025, time.September, 26, 0, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data/mock", "output directory for fixture files")
	flag.Parse()

	// Fixed clock for reproducible generated_at timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2025, time.September, 26, 4, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	rng := rand.New(rand.NewSource(2025_09_26))
	units := domain.DefaultUnitTable()

	archive := genArchive(rng, units)
	forecasts := genForecasts(rng, units)
	typhoon := domain.TyphoonStatus{
		Date:             targetDate,
		HasActiveTyphoon: true,
		TyphoonName:      "Mirasol",
		WindSignalLevel:  2,
		RegionAffected:   true,
		RainfallWarning:  "orange",
	}
	floodRisk := genFloodRisk(rng, units)
	holidays := []string{"2025-08-25", "2025-11-30", "2025-12-08"}

	predictions, err := genPredictions(units, archive, forecasts, typhoon, floodRisk)
	if err != nil {
		return err
	}
	outcomes := genOutcomes(rng, predictions)

	files := map[string]any{
		"weather_archive.json": archive,
		"forecast.json":        forecasts,
		"typhoon_status.json":  []domain.TyphoonStatus{typhoon},
		"flood_risk.json":      floodRisk,
		"holidays.json":        holidays,
		"predictions.json":     predictions,
		"outcomes.json":        outcomes,
	}
	for name, v := range files {
		path := filepath.Join(*outDir, name)
		if err := writeJSON(path, v); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		log.Printf("wrote %s", path)
	}

	printStats(predictions, outcomes)
	return nil
}

// genArchive produces archiveDays of plausible rainy-season weather for
// every tracked unit, with a sharp deterioration over the last two days as
// the mock typhoon approaches.
func genArchive(rng *rand.Rand, units *domain.UnitTable) []domain.WeatherRecord {
	var records []domain.WeatherRecord
	for _, unit := range units.Names() {
		for i := archiveDays; i >= 1; i-- {
			date := baseDate.AddDate(0, 0, -i).Format(domain.DateLayout)
			precip := rng.Float64() * 12
			wind := 15 + rng.Float64()*20
			if i <= 2 {
				precip = 40 + rng.Float64()*30
				wind = 45 + rng.Float64()*25
			}
			records = append(records, weatherRecord(unit, date, "actual", precip, wind, rng))
		}
	}
	return records
}

func genForecasts(rng *rand.Rand, units *domain.UnitTable) []domain.WeatherRecord {
	var records []domain.WeatherRecord
	for _, unit := range units.Names() {
		precip := 55 + rng.Float64()*40
		wind := 50 + rng.Float64()*30
		records = append(records, weatherRecord(unit, targetDate, "forecast", precip, wind, rng))
	}
	return records
}

func weatherRecord(unit, date, provenance string, precip, wind float64, rng *rand.Rand) domain.WeatherRecord {
	gusts := wind * 1.4
	hours := precip / 4
	probMax := 40 + rng.Float64()*55
	pressure := 1002 + rng.Float64()*8
	temp := 27 + rng.Float64()*5
	humidity := 70 + rng.Float64()*25
	cloud := 60 + rng.Float64()*40
	dew := 23 + rng.Float64()*3
	apparent := temp + 3
	code := float64(61 + rng.Intn(4))
	cape := 500 + rng.Float64()*1500

	return domain.WeatherRecord{
		Unit:                     unit,
		Date:                     date,
		Provenance:               domain.Provenance(provenance),
		PrecipitationSum:         &precip,
		PrecipitationHours:       &hours,
		PrecipitationProbability: &probMax,
		WindSpeedMax:             &wind,
		WindGustsMax:             &gusts,
		PressureMin:              &pressure,
		TemperatureMax:           &temp,
		HumidityMean:             &humidity,
		CloudCoverMax:            &cloud,
		DewPointMean:             &dew,
		ApparentTemperatureMax:   &apparent,
		WeatherCode:              &code,
		CAPEMax:                  &cape,
	}
}

func genFloodRisk(rng *rand.Rand, units *domain.UnitTable) map[string]float64 {
	risk := make(map[string]float64, len(units.Names()))
	for _, unit := range units.Names() {
		risk[unit] = 0.2 + rng.Float64()*0.7
	}
	return risk
}

func genPredictions(units *domain.UnitTable, archiveRecords, forecasts []domain.WeatherRecord,
	typhoon domain.TyphoonStatus, floodRisk map[string]float64) ([]domain.Prediction, error) {
	archive, rejects := domain.BuildArchive(archiveRecords)
	if len(rejects) > 0 {
		return nil, fmt.Errorf("generated archive has %d bad records", len(rejects))
	}

	forecastByUnit := make(map[string]*domain.WeatherRecord, len(forecasts))
	for i := range forecasts {
		forecastByUnit[forecasts[i].Unit] = &forecasts[i]
	}

	ruleScorer := scorer.NewRuleScorer()
	typhoonCtx := domain.ContextFor(typhoon)

	var predictions []domain.Prediction
	for _, unit := range units.Names() {
		risk := floodRisk[unit]
		vector, err := domain.BuildFeatureVector(domain.BuilderInput{
			Unit:      unit,
			Date:      baseDate,
			Units:     units,
			Archive:   archive,
			Forecast:  forecastByUnit[unit],
			Typhoon:   typhoon,
			Holidays:  domain.HolidaySet{},
			FloodRisk: &risk,
		})
		if err != nil {
			return nil, fmt.Errorf("build vector for %s: %w", unit, err)
		}

		probability, err := ruleScorer.Score(context.Background(), scorer.Input{
			Vector:  vector,
			Typhoon: typhoonCtx,
		})
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", unit, err)
		}

		predictions = append(predictions,
			domain.NewPrediction(vector, probability, 0.5, typhoonCtx, ruleScorer.Version()))
	}
	return predictions, nil
}

// genOutcomes derives ground truth from the predictions with a few
// deterministic disagreements so validation metrics are nontrivial.
func genOutcomes(rng *rand.Rand, predictions []domain.Prediction) []domain.ActualOutcome {
	outcomes := make([]domain.ActualOutcome, 0, len(predictions))
	for _, p := range predictions {
		suspended := p.PredictedSuspended
		if rng.Float64() < 0.15 {
			suspended = !suspended
		}
		outcomes = append(outcomes, domain.ActualOutcome{
			Date:      p.Date,
			Unit:      p.Unit,
			Suspended: suspended,
		})
	}
	return outcomes
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(predictions []domain.Prediction, outcomes []domain.ActualOutcome) {
	tierCounts := map[string]int{}
	var suspendedPred, suspendedActual int
	for _, p := range predictions {
		tierCounts[string(p.RiskTier.Tier)]++
		if p.PredictedSuspended {
			suspendedPred++
		}
	}
	for _, o := range outcomes {
		if o.Suspended {
			suspendedActual++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Predictions: %d for %s\n", len(predictions), targetDate)
	fmt.Printf("By tier: normal=%d, alert=%d, suspension=%d\n",
		tierCounts["normal"], tierCounts["alert"], tierCounts["suspension"])
	fmt.Printf("Predicted suspended: %d, actually suspended: %d\n", suspendedPred, suspendedActual)
}
