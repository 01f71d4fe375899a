package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// prediction pipeline.
type Metrics struct {
	VectorsBuilt  prometheus.Counter
	VectorErrors  prometheus.Counter
	UnitsSkipped  prometheus.Counter
	RunsCompleted prometheus.Counter

	PipelineRunning prometheus.Gauge
	RunDuration     prometheus.Histogram

	ScorerRequests    *prometheus.CounterVec // labels: outcome={success,error}
	PredictionsByTier *prometheus.CounterVec // labels: tier={normal,alert,suspension}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		VectorsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suspension_pipeline",
			Name:      "vectors_built_total",
			Help:      "Total feature vectors assembled.",
		}),
		VectorErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suspension_pipeline",
			Name:      "vector_errors_total",
			Help:      "Total feature vector build failures.",
		}),
		UnitsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suspension_pipeline",
			Name:      "units_skipped_total",
			Help:      "Total units skipped during prediction runs.",
		}),
		RunsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suspension_pipeline",
			Name:      "runs_completed_total",
			Help:      "Total prediction runs that wrote output.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "suspension_pipeline",
			Name:      "running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "suspension_pipeline",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete prediction run.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ScorerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "suspension_pipeline",
			Name:      "scorer_requests_total",
			Help:      "Scoring requests by outcome.",
		}, []string{"outcome"}),
		PredictionsByTier: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "suspension_pipeline",
			Name:      "predictions_total",
			Help:      "Predictions produced by risk tier.",
		}, []string{"tier"}),
	}

	prometheus.MustRegister(
		m.VectorsBuilt,
		m.VectorErrors,
		m.UnitsSkipped,
		m.RunsCompleted,
		m.PipelineRunning,
		m.RunDuration,
		m.ScorerRequests,
		m.PredictionsByTier,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		VectorsBuilt:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "suspension_pipeline", Name: "vectors_built_total"}),
		VectorErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "suspension_pipeline", Name: "vector_errors_total"}),
		UnitsSkipped:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "suspension_pipeline", Name: "units_skipped_total"}),
		RunsCompleted:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "suspension_pipeline", Name: "runs_completed_total"}),
		PipelineRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "suspension_pipeline", Name: "running"}),
		RunDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "suspension_pipeline", Name: "run_duration_seconds"}),
		ScorerRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "suspension_pipeline", Name: "scorer_requests_total"}, []string{"outcome"}),
		PredictionsByTier: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "suspension_pipeline", Name: "predictions_total"}, []string{"tier"}),
	}
}
