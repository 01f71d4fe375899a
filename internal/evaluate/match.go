// Package evaluate joins predictions to recorded outcomes and derives
// confusion-matrix metrics, overall and sliced by date, unit, and risk tier.
package evaluate

import (
	"github.com/stormsignal/suspension-pipeline/internal/domain"
	"github.com/stormsignal/suspension-pipeline/internal/tier"
)

// Key identifies one (date, unit) pair. Unit names must already be canonical
// on both sides; the matcher joins by exact key equality and never fuzzies.
type Key struct {
	Date string
	Unit string
}

// Pair is a prediction joined to its known outcome.
type Pair struct {
	Key         Key
	Probability float64
	Predicted   bool
	Tier        tier.Tier
	Actual      bool
}

// MatchResult separates joinable pairs from the coverage gaps on either side.
// Predictions without ground truth are excluded from all metrics, not counted
// as true negatives; outcomes without a prediction are reported, not dropped.
type MatchResult struct {
	Pairs                []Pair
	PredictionsNoOutcome []domain.Prediction
	OutcomesNoPrediction []domain.ActualOutcome
}

// Match joins predictions to actual outcomes by (date, unit). Duplicate keys
// on either side are first-wins.
func Match(predictions []domain.Prediction, outcomes []domain.ActualOutcome) MatchResult {
	actualByKey := make(map[Key]bool, len(outcomes))
	outcomeOrder := make([]domain.ActualOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		k := Key{Date: o.Date, Unit: o.Unit}
		if _, seen := actualByKey[k]; seen {
			continue
		}
		actualByKey[k] = o.Suspended
		outcomeOrder = append(outcomeOrder, o)
	}

	var result MatchResult
	matched := make(map[Key]bool, len(predictions))
	seenPred := make(map[Key]bool, len(predictions))

	for _, p := range predictions {
		k := Key{Date: p.Date, Unit: p.Unit}
		if seenPred[k] {
			continue
		}
		seenPred[k] = true

		actual, ok := actualByKey[k]
		if !ok {
			result.PredictionsNoOutcome = append(result.PredictionsNoOutcome, p)
			continue
		}
		matched[k] = true
		result.Pairs = append(result.Pairs, Pair{
			Key:         k,
			Probability: p.Probability,
			Predicted:   p.PredictedSuspended,
			Tier:        p.RiskTier.Tier,
			Actual:      actual,
		})
	}

	for _, o := range outcomeOrder {
		if !matched[Key{Date: o.Date, Unit: o.Unit}] {
			result.OutcomesNoPrediction = append(result.OutcomesNoPrediction, o)
		}
	}

	return result
}
