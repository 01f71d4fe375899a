package domain

import (
	"time"

	"github.com/stormsignal/suspension-pipeline/internal/tier"
)

// Prediction is one (unit, date) suspension prediction. Created once per
// pipeline run and immutable afterwards; validation attaches the recorded
// outcome without touching the original fields.
type Prediction struct {
	Date               string              `json:"prediction_date"`
	Unit               string              `json:"lgu"`
	Probability        float64             `json:"suspension_probability"`
	PredictedSuspended bool                `json:"predicted_suspended"`
	RiskTier           tier.Details        `json:"risk_tier"`
	WeatherContext     tier.WeatherContext `json:"weather_context"`
	TyphoonContext     TyphoonContext      `json:"pagasa_context"`
	ClassifierVersion  string              `json:"model_version"`
	DecisionThreshold  float64             `json:"threshold_used"`
	GeneratedAt        time.Time           `json:"generated_at"`

	// ActualSuspended is attached during validation when ground truth is
	// known; nil means no recorded outcome yet.
	ActualSuspended *bool `json:"actual_suspended,omitempty"`
}

// NewPrediction assembles a prediction record from a scored feature vector
// and its typhoon context. The decision threshold drives predicted_suspended
// only; the risk tier comes from the tier boundaries and the two can
// legitimately disagree for probabilities between the tier floor and the
// threshold.
func NewPrediction(v FeatureVector, probability, threshold float64, typhoon TyphoonContext, classifierVersion string) Prediction {
	t := tier.Assign(probability)

	var precip *float64
	if mm, ok := v.Value("fcst_precipitation_sum"); ok {
		precip = &mm
	}
	var warning string
	if typhoon.RainfallWarning.Active() {
		warning = typhoon.RainfallWarning.String()
	}

	return Prediction{
		Date:               v.Date,
		Unit:               v.Unit,
		Probability:        probability,
		PredictedSuspended: probability >= threshold,
		RiskTier:           tier.DetailsFor(t, typhoon.EffectiveWindSignal),
		WeatherContext:     tier.FormatWeatherContext(precip, warning, typhoon.EffectiveWindSignal, typhoon.TyphoonName),
		TyphoonContext:     typhoon,
		ClassifierVersion:  classifierVersion,
		DecisionThreshold:  threshold,
		GeneratedAt:        clock.Now(),
	}
}

// ActualOutcome is the independently recorded ground truth for a (date, unit).
type ActualOutcome struct {
	Date      string `json:"date"`
	Unit      string `json:"lgu"`
	Suspended bool   `json:"suspended"`
}
