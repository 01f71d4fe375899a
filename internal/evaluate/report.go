package evaluate

import (
	"sort"

	"github.com/stormsignal/suspension-pipeline/internal/tier"
)

// SliceMetrics is the metric set for one named slice of the matched pairs,
// such as a single date or a single LGU.
type SliceMetrics struct {
	Key string `json:"key"`
	Metrics
}

// CoverageGaps counts records that could not be matched across sides.
type CoverageGaps struct {
	PredictionsWithoutOutcome int `json:"predictions_without_outcome"`
	OutcomesWithoutPrediction int `json:"outcomes_without_prediction"`
}

// Report is the full validation report for one match result: an overall
// confusion matrix plus per-date, per-unit, and per-tier breakdowns. Slice
// totals always sum back to the overall pair count.
type Report struct {
	Overall Metrics               `json:"overall"`
	ByDate  []SliceMetrics        `json:"by_date"`
	ByUnit  []SliceMetrics        `json:"by_unit"`
	ByTier  map[tier.Tier]Metrics `json:"by_tier"`
	Gaps    CoverageGaps          `json:"coverage_gaps"`
}

// BuildReport derives a validation report from a match result. Every slice
// is recounted from the raw pairs.
func BuildReport(m MatchResult) Report {
	byDate := make(map[string][]Pair)
	byUnit := make(map[string][]Pair)
	byTier := make(map[tier.Tier][]Pair)
	for _, p := range m.Pairs {
		byDate[p.Key.Date] = append(byDate[p.Key.Date], p)
		byUnit[p.Key.Unit] = append(byUnit[p.Key.Unit], p)
		byTier[p.Tier] = append(byTier[p.Tier], p)
	}

	tiers := make(map[tier.Tier]Metrics, len(byTier))
	for t, pairs := range byTier {
		tiers[t] = ComputeMetrics(Count(pairs))
	}

	return Report{
		Overall: ComputeMetrics(Count(m.Pairs)),
		ByDate:  sliceMetrics(byDate),
		ByUnit:  sliceMetrics(byUnit),
		ByTier:  tiers,
		Gaps: CoverageGaps{
			PredictionsWithoutOutcome: len(m.PredictionsNoOutcome),
			OutcomesWithoutPrediction: len(m.OutcomesNoPrediction),
		},
	}
}

func sliceMetrics(groups map[string][]Pair) []SliceMetrics {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]SliceMetrics, 0, len(keys))
	for _, k := range keys {
		out = append(out, SliceMetrics{Key: k, Metrics: ComputeMetrics(Count(groups[k]))})
	}
	return out
}
