package scorer

import (
	"context"
)

// RuleScorer is the degraded-mode fallback used when the classifier service
// is unavailable. It sums fixed weights for the signals that historically
// precede suspensions and caps the result at 1.0. The weights are not
// calibrated probabilities; they exist so the pipeline keeps producing
// ranked, tiered output during classifier outages.
type RuleScorer struct{}

// NewRuleScorer creates the rule-based fallback scorer.
func NewRuleScorer() *RuleScorer { return &RuleScorer{} }

func (s *RuleScorer) Score(_ context.Context, in Input) (float64, error) {
	score := 0.0

	if in.Typhoon.HasActiveTyphoon {
		score += 0.3
	}
	if in.Typhoon.EffectiveWindSignal >= 2 {
		score += 0.2
	}
	if in.Typhoon.RainfallWarning.Active() {
		score += 0.15
	}

	if precip, ok := in.Vector.Value("fcst_precipitation_sum"); ok {
		switch {
		case precip > 50:
			score += 0.2
		case precip > 20:
			score += 0.1
		}
	}
	if wind, ok := in.Vector.Value("fcst_wind_speed_max"); ok {
		switch {
		case wind > 60:
			score += 0.15
		case wind > 40:
			score += 0.05
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score, nil
}

func (s *RuleScorer) Version() string { return "rules-v1" }
