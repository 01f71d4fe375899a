package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stormsignal/suspension-pipeline/internal/domain"
	"github.com/stormsignal/suspension-pipeline/internal/tier"
)

func TestSerializeToMessage(t *testing.T) {
	p := domain.Prediction{
		Date:               "2025-09-26",
		Unit:               "Quezon City",
		Probability:        0.72,
		PredictedSuspended: true,
		RiskTier:           tier.DetailsFor(tier.Red, 2),
		ClassifierVersion:  "xgb-v2",
		DecisionThreshold:  0.5,
	}

	msg, err := serializeToMessage(p)
	require.NoError(t, err)

	assert.Equal(t, "2025-09-26|Quezon City", string(msg.Key))

	var decoded domain.Prediction
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, p.Unit, decoded.Unit)
	assert.Equal(t, p.Probability, decoded.Probability)
	assert.Equal(t, tier.Red, decoded.RiskTier.Tier)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "risk_tier", msg.Headers[0].Key)
	assert.Equal(t, "suspension", string(msg.Headers[0].Value))
	assert.Equal(t, "model_version", msg.Headers[1].Key)
	assert.Equal(t, "xgb-v2", string(msg.Headers[1].Value))
}
