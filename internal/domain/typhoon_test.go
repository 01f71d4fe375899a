package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRainfallWarning(t *testing.T) {
	tests := []struct {
		raw  string
		want RainfallWarning
	}{
		{"", RainfallNone},
		{"none", RainfallNone},
		{"yellow", RainfallYellow},
		{"Orange", RainfallOrange},
		{"RED", RainfallRed},
		{"purple", RainfallNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRainfallWarning(tt.raw), "raw=%q", tt.raw)
	}
}

func TestRainfallWarningOrdering(t *testing.T) {
	// Severity comparisons rely on the ordinal encoding.
	assert.True(t, RainfallRed > RainfallOrange)
	assert.True(t, RainfallOrange > RainfallYellow)
	assert.True(t, RainfallYellow > RainfallNone)

	assert.False(t, RainfallNone.Active())
	assert.True(t, RainfallYellow.Active())
}

func TestRainfallWarningJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(RainfallOrange)
	require.NoError(t, err)
	assert.Equal(t, `"ORANGE"`, string(data))

	var w RainfallWarning
	require.NoError(t, json.Unmarshal([]byte(`"red"`), &w))
	assert.Equal(t, RainfallRed, w)
}

func TestEffectiveWindSignal(t *testing.T) {
	tests := []struct {
		name   string
		status TyphoonStatus
		want   int
	}{
		{"region affected passes signal through", TyphoonStatus{WindSignalLevel: 3, RegionAffected: true}, 3},
		{"region not affected gates to zero", TyphoonStatus{WindSignalLevel: 3, RegionAffected: false}, 0},
		{"negative clamps to zero", TyphoonStatus{WindSignalLevel: -1, RegionAffected: true}, 0},
		{"above maximum clamps to five", TyphoonStatus{WindSignalLevel: 9, RegionAffected: true}, 5},
		{"no signal", TyphoonStatus{WindSignalLevel: 0, RegionAffected: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveWindSignal(tt.status))
		})
	}
}

func TestContextFor(t *testing.T) {
	status := TyphoonStatus{
		Date:             "2025-09-26",
		HasActiveTyphoon: true,
		TyphoonName:      "Mirasol",
		WindSignalLevel:  4,
		RegionAffected:   false,
		RainfallWarning:  "orange",
	}

	ctx := ContextFor(status)

	assert.True(t, ctx.HasActiveTyphoon)
	assert.Equal(t, "Mirasol", ctx.TyphoonName)
	assert.Equal(t, 0, ctx.EffectiveWindSignal, "ungated signal must not leak into decisions")
	assert.Equal(t, 4, ctx.RawWindSignal, "raw level is preserved for the audit trail")
	assert.False(t, ctx.RegionAffected)
	assert.Equal(t, RainfallOrange, ctx.RainfallWarning)
}
