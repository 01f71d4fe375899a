// Package pipeline orchestrates one prediction cycle: build a feature vector
// per tracked LGU, score it, and write the assembled predictions out.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/stormsignal/suspension-pipeline/internal/domain"
	"github.com/stormsignal/suspension-pipeline/internal/observability"
	"github.com/stormsignal/suspension-pipeline/internal/scorer"
	"github.com/stormsignal/suspension-pipeline/internal/tier"
)

// RunInput is everything one prediction run needs: the historical weather
// archive, the forecast for the target date, the PAGASA bulletin snapshot,
// and per-unit flood risk scores.
type RunInput struct {
	Date      string
	Archive   *domain.Archive
	Forecasts map[string]*domain.WeatherRecord
	Typhoon   domain.TyphoonStatus
	FloodRisk map[string]float64
}

// InputLoader assembles the RunInput for a target date.
type InputLoader interface {
	LoadRunInput(ctx context.Context, date string) (RunInput, error)
}

// PredictionWriter persists or publishes a completed batch of predictions.
type PredictionWriter interface {
	WritePredictions(ctx context.Context, predictions []domain.Prediction) error
}

// Pipeline runs the per-unit predict cycle on a fixed daily schedule.
type Pipeline struct {
	units     *domain.UnitTable
	loader    InputLoader
	scorer    scorer.Scorer
	writers   []PredictionWriter
	holidays  domain.HolidaySet
	threshold float64
	interval  time.Duration
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(units *domain.UnitTable, loader InputLoader, s scorer.Scorer, writers []PredictionWriter,
	holidays domain.HolidaySet, threshold float64, interval time.Duration,
	logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		units:     units,
		loader:    loader,
		scorer:    s,
		writers:   writers,
		holidays:  holidays,
		threshold: threshold,
		interval:  interval,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil if the pipeline has completed at least one run,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a run yet")
	}
	return nil
}

// Run executes prediction runs on the configured interval until the context
// is cancelled. A failed run is logged and retried on the next tick; the
// loop itself never dies on run errors.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "interval", p.interval, "threshold", p.threshold)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	for {
		date := domain.Today()
		if _, err := p.RunOnce(ctx, date); err != nil {
			if ctx.Err() != nil {
				p.logger.Info("pipeline stopping", "reason", ctx.Err())
				return nil
			}
			p.logger.Error("prediction run failed", "date", date, "error", err)
		}

		if !sleepWithContext(ctx, p.interval) {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// RunOnce executes one full prediction cycle for the given date and returns
// the predictions it produced. A record that fails vector building or
// scoring is skipped and the rest of the run continues; the one exception is
// scorer.ErrProbabilityRange, which reports a broken classifier contract and
// aborts the whole run rather than emit predictions beside garbage scores.
func (p *Pipeline) RunOnce(ctx context.Context, date string) ([]domain.Prediction, error) {
	start := time.Now()
	p.logger.Info("prediction run started", "date", date, "units", len(p.units.Names()))

	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("bad run date %q: %w", date, err)
	}

	input, err := p.loader.LoadRunInput(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load run input: %w", err)
	}
	typhoon := domain.ContextFor(input.Typhoon)

	predictions := make([]domain.Prediction, 0, len(p.units.Names()))
	for _, unit := range p.units.Names() {
		prediction, err := p.predictUnit(ctx, unit, day, input, typhoon)
		if err != nil {
			if errors.Is(err, scorer.ErrProbabilityRange) {
				return nil, fmt.Errorf("unit %s: %w", unit, err)
			}
			p.logger.Warn("unit skipped", "unit", unit, "date", date, "error", err)
			p.metrics.UnitsSkipped.Inc()
			continue
		}
		p.metrics.PredictionsByTier.WithLabelValues(string(prediction.RiskTier.Tier)).Inc()
		predictions = append(predictions, prediction)
	}

	if len(predictions) == 0 {
		return nil, errors.New("no units produced a prediction")
	}

	for _, w := range p.writers {
		if err := w.WritePredictions(ctx, predictions); err != nil {
			return nil, fmt.Errorf("write predictions: %w", err)
		}
	}

	summary := tierSummary(predictions)
	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.metrics.RunsCompleted.Inc()
	p.ready.Store(true)
	p.logger.Info("prediction run completed",
		"date", date,
		"predictions", len(predictions),
		"skipped", len(p.units.Names())-len(predictions),
		"alerts", summary.Alerts(),
		"duration", time.Since(start),
	)
	return predictions, nil
}

func (p *Pipeline) predictUnit(ctx context.Context, unit string, day time.Time, input RunInput, typhoon domain.TyphoonContext) (domain.Prediction, error) {
	var floodRisk *float64
	if risk, ok := input.FloodRisk[unit]; ok {
		floodRisk = &risk
	}

	vector, err := domain.BuildFeatureVector(domain.BuilderInput{
		Unit:      unit,
		Date:      day,
		Units:     p.units,
		Archive:   input.Archive,
		Forecast:  input.Forecasts[unit],
		Typhoon:   input.Typhoon,
		Holidays:  p.holidays,
		FloodRisk: floodRisk,
	})
	if err != nil {
		p.metrics.VectorErrors.Inc()
		return domain.Prediction{}, fmt.Errorf("build vector: %w", err)
	}
	p.metrics.VectorsBuilt.Inc()

	probability, err := p.scorer.Score(ctx, scorer.Input{Vector: vector, Typhoon: typhoon})
	if err != nil {
		p.metrics.ScorerRequests.WithLabelValues("error").Inc()
		return domain.Prediction{}, fmt.Errorf("score: %w", err)
	}
	p.metrics.ScorerRequests.WithLabelValues("success").Inc()

	return domain.NewPrediction(vector, probability, p.threshold, typhoon, p.scorer.Version()), nil
}

func tierSummary(predictions []domain.Prediction) tier.Distribution {
	probabilities := make([]float64, len(predictions))
	for i, p := range predictions {
		probabilities[i] = p.Probability
	}
	return tier.Summarize(probabilities)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
