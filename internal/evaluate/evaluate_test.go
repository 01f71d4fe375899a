package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stormsignal/suspension-pipeline/internal/domain"
	"github.com/stormsignal/suspension-pipeline/internal/tier"
)

func prediction(date, unit string, probability float64, predicted bool) domain.Prediction {
	return domain.Prediction{
		Date:               date,
		Unit:               unit,
		Probability:        probability,
		PredictedSuspended: predicted,
		RiskTier:           tier.DetailsFor(tier.Assign(probability), 0),
	}
}

func outcome(date, unit string, suspended bool) domain.ActualOutcome {
	return domain.ActualOutcome{Date: date, Unit: unit, Suspended: suspended}
}

func TestMatch(t *testing.T) {
	t.Run("joins by exact date and unit", func(t *testing.T) {
		m := Match(
			[]domain.Prediction{
				prediction("2025-09-26", "Manila", 0.7, true),
				prediction("2025-09-26", "Pasig", 0.2, false),
			},
			[]domain.ActualOutcome{
				outcome("2025-09-26", "Manila", true),
				outcome("2025-09-26", "Pasig", false),
			},
		)

		require.Len(t, m.Pairs, 2)
		assert.Empty(t, m.PredictionsNoOutcome)
		assert.Empty(t, m.OutcomesNoPrediction)
		assert.Equal(t, Key{Date: "2025-09-26", Unit: "Manila"}, m.Pairs[0].Key)
		assert.True(t, m.Pairs[0].Actual)
	})

	t.Run("coverage gaps are reported both ways", func(t *testing.T) {
		m := Match(
			[]domain.Prediction{
				prediction("2025-09-26", "Manila", 0.7, true),
				prediction("2025-09-27", "Manila", 0.6, true), // no outcome yet
			},
			[]domain.ActualOutcome{
				outcome("2025-09-26", "Manila", true),
				outcome("2025-09-26", "Taguig", false), // never predicted
			},
		)

		require.Len(t, m.Pairs, 1)
		require.Len(t, m.PredictionsNoOutcome, 1)
		assert.Equal(t, "2025-09-27", m.PredictionsNoOutcome[0].Date)
		require.Len(t, m.OutcomesNoPrediction, 1)
		assert.Equal(t, "Taguig", m.OutcomesNoPrediction[0].Unit)
	})

	t.Run("unmatched predictions never count as negatives", func(t *testing.T) {
		m := Match(
			[]domain.Prediction{prediction("2025-09-26", "Manila", 0.1, false)},
			nil,
		)

		assert.Empty(t, m.Pairs)
		c := Count(m.Pairs)
		assert.Equal(t, 0, c.TN, "a prediction without ground truth is a gap, not a true negative")
	})

	t.Run("duplicate keys are first-wins", func(t *testing.T) {
		m := Match(
			[]domain.Prediction{
				prediction("2025-09-26", "Manila", 0.7, true),
				prediction("2025-09-26", "Manila", 0.1, false),
			},
			[]domain.ActualOutcome{
				outcome("2025-09-26", "Manila", true),
				outcome("2025-09-26", "Manila", false),
			},
		)

		require.Len(t, m.Pairs, 1)
		assert.True(t, m.Pairs[0].Predicted)
		assert.True(t, m.Pairs[0].Actual)
	})
}

func TestCount(t *testing.T) {
	pairs := []Pair{
		{Predicted: true, Actual: true},
		{Predicted: true, Actual: true},
		{Predicted: true, Actual: false},
		{Predicted: false, Actual: true},
		{Predicted: false, Actual: false},
		{Predicted: false, Actual: false},
		{Predicted: false, Actual: false},
	}

	c := Count(pairs)

	assert.Equal(t, Counts{TP: 2, FP: 1, FN: 1, TN: 3}, c)
	assert.Equal(t, 7, c.Total())
}

func TestComputeMetrics(t *testing.T) {
	t.Run("standard case", func(t *testing.T) {
		m := ComputeMetrics(Counts{TP: 6, FP: 2, FN: 3, TN: 9})

		assert.InDelta(t, 0.75, m.Accuracy, 1e-9)
		assert.InDelta(t, 0.75, m.Precision, 1e-9)    // 6/8
		assert.InDelta(t, 2.0/3.0, m.Recall, 1e-9)    // 6/9
		assert.InDelta(t, 9.0/11.0, m.Specificity, 1e-9)
		// F1 = 2PR/(P+R), F2 = 5PR/(4P+R).
		assert.InDelta(t, 2*0.75*(2.0/3.0)/(0.75+2.0/3.0), m.F1, 1e-9)
		assert.InDelta(t, 5*0.75*(2.0/3.0)/(4*0.75+2.0/3.0), m.F2, 1e-9)
	})

	t.Run("f2 weights recall over precision", func(t *testing.T) {
		highRecall := ComputeMetrics(Counts{TP: 9, FP: 9, FN: 1, TN: 1})
		highPrecision := ComputeMetrics(Counts{TP: 5, FP: 0, FN: 5, TN: 10})

		assert.Greater(t, highRecall.F2, highPrecision.F2)
	})

	t.Run("zero denominators resolve to zero", func(t *testing.T) {
		t.Run("no predicted positives", func(t *testing.T) {
			m := ComputeMetrics(Counts{TN: 5, FN: 2})
			assert.Equal(t, 0.0, m.Precision)
			assert.Equal(t, 0.0, m.F1)
			assert.Equal(t, 0.0, m.F2)
		})
		t.Run("no actual positives", func(t *testing.T) {
			m := ComputeMetrics(Counts{TN: 5, FP: 2})
			assert.Equal(t, 0.0, m.Recall)
		})
		t.Run("no actual negatives", func(t *testing.T) {
			m := ComputeMetrics(Counts{TP: 5, FN: 2})
			assert.Equal(t, 0.0, m.Specificity)
		})
		t.Run("empty counts", func(t *testing.T) {
			m := ComputeMetrics(Counts{})
			assert.Equal(t, 0.0, m.Accuracy)
			assert.Equal(t, 0.0, m.Precision)
			assert.Equal(t, 0.0, m.Recall)
			assert.Equal(t, 0.0, m.F1)
			assert.Equal(t, 0.0, m.F2)
			assert.Equal(t, 0.0, m.Specificity)
		})
	})
}

func TestBuildReport(t *testing.T) {
	predictions := []domain.Prediction{
		prediction("2025-09-26", "Manila", 0.72, true),
		prediction("2025-09-26", "Pasig", 0.45, false),
		prediction("2025-09-26", "Taguig", 0.12, false),
		prediction("2025-09-27", "Manila", 0.58, true),
		prediction("2025-09-27", "Pasig", 0.30, false),
		prediction("2025-09-28", "Valenzuela", 0.91, true), // no outcome
	}
	outcomes := []domain.ActualOutcome{
		outcome("2025-09-26", "Manila", true),
		outcome("2025-09-26", "Pasig", true), // missed suspension
		outcome("2025-09-26", "Taguig", false),
		outcome("2025-09-27", "Manila", false), // false alarm
		outcome("2025-09-27", "Pasig", false),
		outcome("2025-09-27", "Navotas", true), // never predicted
	}

	report := BuildReport(Match(predictions, outcomes))

	assert.Equal(t, Counts{TP: 1, FP: 1, FN: 1, TN: 2}, report.Overall.Counts)
	assert.Equal(t, 1, report.Gaps.PredictionsWithoutOutcome)
	assert.Equal(t, 1, report.Gaps.OutcomesWithoutPrediction)

	t.Run("slice totals sum to overall", func(t *testing.T) {
		var byDate, byUnit, byTier int
		for _, m := range report.ByDate {
			byDate += m.Total()
		}
		for _, m := range report.ByUnit {
			byUnit += m.Total()
		}
		for _, m := range report.ByTier {
			byTier += m.Total()
		}
		assert.Equal(t, report.Overall.Total(), byDate)
		assert.Equal(t, report.Overall.Total(), byUnit)
		assert.Equal(t, report.Overall.Total(), byTier)
	})

	t.Run("slices are keyed and sorted", func(t *testing.T) {
		require.Len(t, report.ByDate, 2)
		assert.Equal(t, "2025-09-26", report.ByDate[0].Key)
		assert.Equal(t, "2025-09-27", report.ByDate[1].Key)

		require.Len(t, report.ByUnit, 3)
		assert.Equal(t, "Manila", report.ByUnit[0].Key)
	})

	t.Run("per-tier breakdown", func(t *testing.T) {
		red, ok := report.ByTier[tier.Red]
		require.True(t, ok)
		assert.Equal(t, Counts{TP: 1, FP: 1}, red.Counts)

		orange, ok := report.ByTier[tier.Orange]
		require.True(t, ok)
		assert.Equal(t, Counts{FN: 1}, orange.Counts)

		green, ok := report.ByTier[tier.Green]
		require.True(t, ok)
		assert.Equal(t, Counts{TN: 2}, green.Counts)
	})
}
