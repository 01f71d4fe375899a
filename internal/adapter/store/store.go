// Package store reads and writes the pipeline's JSON data files: the weather
// archive, forecasts, PAGASA bulletin snapshots, flood risk scores, holiday
// calendars, predictions, and recorded outcomes.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/stormsignal/suspension-pipeline/internal/domain"
	"github.com/stormsignal/suspension-pipeline/internal/pipeline"
)

// Paths locates every data file the store manages.
type Paths struct {
	Archive     string
	Forecast    string
	Typhoon     string
	FloodRisk   string
	Holidays    string
	Predictions string
}

// FileStore loads run inputs from JSON files and persists prediction
// batches. It implements pipeline.InputLoader and pipeline.PredictionWriter.
type FileStore struct {
	paths  Paths
	units  *domain.UnitTable
	logger *slog.Logger
}

// NewFileStore creates a file-backed store.
func NewFileStore(paths Paths, units *domain.UnitTable, logger *slog.Logger) *FileStore {
	return &FileStore{paths: paths, units: units, logger: logger}
}

// LoadRunInput assembles everything one prediction run needs for a date.
// The typhoon snapshot and flood risk files are optional; a missing bulletin
// means no active typhoon and missing flood risk falls back to the builder
// default.
func (s *FileStore) LoadRunInput(_ context.Context, date string) (pipeline.RunInput, error) {
	archive, err := s.LoadArchive()
	if err != nil {
		return pipeline.RunInput{}, err
	}

	forecasts, err := s.loadForecasts()
	if err != nil {
		return pipeline.RunInput{}, err
	}

	typhoon, err := s.typhoonStatusFor(date)
	if err != nil {
		return pipeline.RunInput{}, err
	}

	floodRisk, err := s.loadFloodRisk()
	if err != nil {
		return pipeline.RunInput{}, err
	}

	return pipeline.RunInput{
		Date:      date,
		Archive:   archive,
		Forecasts: forecasts,
		Typhoon:   typhoon,
		FloodRisk: floodRisk,
	}, nil
}

// LoadArchive reads the historical weather file and indexes it by
// (unit, date). Records the builder rejects are logged and dropped, never
// fatal for the whole archive.
func (s *FileStore) LoadArchive() (*domain.Archive, error) {
	var records []domain.WeatherRecord
	if err := readJSON(s.paths.Archive, &records); err != nil {
		return nil, fmt.Errorf("load archive: %w", err)
	}

	archive, rejects := domain.BuildArchive(records)
	for _, rej := range rejects {
		s.logger.Warn("archive record dropped", "error", rej)
	}
	return archive, nil
}

func (s *FileStore) loadForecasts() (map[string]*domain.WeatherRecord, error) {
	var records []domain.WeatherRecord
	if err := readJSON(s.paths.Forecast, &records); err != nil {
		return nil, fmt.Errorf("load forecasts: %w", err)
	}

	forecasts := make(map[string]*domain.WeatherRecord, len(records))
	for i := range records {
		rec := records[i]
		unit := domain.NormalizeUnitName(rec.Unit)
		if !s.units.Contains(unit) {
			s.logger.Warn("forecast for unknown unit dropped", "lgu", rec.Unit)
			continue
		}
		if _, seen := forecasts[unit]; seen {
			continue
		}
		rec.Unit = unit
		forecasts[unit] = &rec
	}
	return forecasts, nil
}

// LoadTyphoonStatuses reads all bulletin snapshots from the typhoon file.
func (s *FileStore) LoadTyphoonStatuses() ([]domain.TyphoonStatus, error) {
	var statuses []domain.TyphoonStatus
	if err := readJSON(s.paths.Typhoon, &statuses); err != nil {
		return nil, fmt.Errorf("load typhoon statuses: %w", err)
	}
	return statuses, nil
}

func (s *FileStore) typhoonStatusFor(date string) (domain.TyphoonStatus, error) {
	if _, err := os.Stat(s.paths.Typhoon); os.IsNotExist(err) {
		return domain.TyphoonStatus{Date: date}, nil
	}
	statuses, err := s.LoadTyphoonStatuses()
	if err != nil {
		return domain.TyphoonStatus{}, err
	}
	for _, st := range statuses {
		if st.Date == date {
			return st, nil
		}
	}
	return domain.TyphoonStatus{Date: date}, nil
}

func (s *FileStore) loadFloodRisk() (map[string]float64, error) {
	if _, err := os.Stat(s.paths.FloodRisk); os.IsNotExist(err) {
		return nil, nil
	}

	var raw map[string]float64
	if err := readJSON(s.paths.FloodRisk, &raw); err != nil {
		return nil, fmt.Errorf("load flood risk: %w", err)
	}

	risk := make(map[string]float64, len(raw))
	for name, score := range raw {
		risk[domain.NormalizeUnitName(name)] = score
	}
	return risk, nil
}

// LoadHolidays reads the holiday calendar as a set of dates.
func LoadHolidays(path string) (domain.HolidaySet, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return domain.HolidaySet{}, nil
	}

	var dates []string
	if err := readJSON(path, &dates); err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}

	holidays := make(domain.HolidaySet, len(dates))
	for _, d := range dates {
		holidays[d] = true
	}
	return holidays, nil
}

// WritePredictions persists a prediction batch, replacing the previous file
// contents atomically via a rename.
func (s *FileStore) WritePredictions(_ context.Context, predictions []domain.Prediction) error {
	data, err := json.MarshalIndent(predictions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal predictions: %w", err)
	}

	dir := filepath.Dir(s.paths.Predictions)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create predictions dir: %w", err)
	}

	tmp := s.paths.Predictions + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write predictions: %w", err)
	}
	if err := os.Rename(tmp, s.paths.Predictions); err != nil {
		return fmt.Errorf("replace predictions: %w", err)
	}

	s.logger.Info("predictions written", "path", s.paths.Predictions, "count", len(predictions))
	return nil
}

// LoadPredictions reads a previously written prediction batch.
func LoadPredictions(path string) ([]domain.Prediction, error) {
	var predictions []domain.Prediction
	if err := readJSON(path, &predictions); err != nil {
		return nil, fmt.Errorf("load predictions: %w", err)
	}
	return predictions, nil
}

// LoadOutcomes reads recorded ground truth. Unit names are canonicalized and
// records for units outside the table are dropped with a warning.
func LoadOutcomes(path string, units *domain.UnitTable, logger *slog.Logger) ([]domain.ActualOutcome, error) {
	var raw []domain.ActualOutcome
	if err := readJSON(path, &raw); err != nil {
		return nil, fmt.Errorf("load outcomes: %w", err)
	}

	outcomes := make([]domain.ActualOutcome, 0, len(raw))
	for _, o := range raw {
		o.Unit = domain.NormalizeUnitName(o.Unit)
		if !units.Contains(o.Unit) {
			logger.Warn("outcome for unknown unit dropped", "lgu", o.Unit, "date", o.Date)
			continue
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
