// Package scorer produces suspension probabilities for feature vectors,
// either from the trained classifier service or from the rule-based
// fallback when no classifier is reachable.
package scorer

import (
	"context"
	"errors"

	"github.com/stormsignal/suspension-pipeline/internal/domain"
)

// ErrProbabilityRange reports a classifier response outside [0, 1]. A score
// out of range means the classifier contract is broken, not that one record
// is bad, so callers abort the run instead of skipping the record.
var ErrProbabilityRange = errors.New("probability outside [0, 1]")

// Input is one scoring request. The typhoon context rides alongside the
// vector because the rule-based scorer needs bulletin flags that the vector
// does not carry.
type Input struct {
	Vector  domain.FeatureVector
	Typhoon domain.TyphoonContext
}

// Scorer converts a feature vector into a suspension probability in [0, 1].
type Scorer interface {
	Score(ctx context.Context, in Input) (float64, error)

	// Version identifies the model or rule set behind the scores, recorded
	// on every prediction for auditability.
	Version() string
}
