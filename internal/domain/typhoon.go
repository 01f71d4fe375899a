package domain

import "strings"

// RainfallWarning is the ordinal PAGASA rainfall advisory scale. It is a
// separate scale from the wind signal level and the two are never compared.
type RainfallWarning int

const (
	RainfallNone RainfallWarning = iota
	RainfallYellow
	RainfallOrange
	RainfallRed
)

// MaxWindSignal is the highest TCWS severity level in PAGASA bulletins.
const MaxWindSignal = 5

// ParseRainfallWarning maps a bulletin warning string to its ordinal level.
// Unknown or empty strings mean no active warning.
func ParseRainfallWarning(s string) RainfallWarning {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YELLOW":
		return RainfallYellow
	case "ORANGE":
		return RainfallOrange
	case "RED":
		return RainfallRed
	default:
		return RainfallNone
	}
}

func (w RainfallWarning) String() string {
	switch w {
	case RainfallYellow:
		return "YELLOW"
	case RainfallOrange:
		return "ORANGE"
	case RainfallRed:
		return "RED"
	default:
		return "NONE"
	}
}

// Active reports whether any rainfall warning is in effect.
func (w RainfallWarning) Active() bool { return w > RainfallNone }

// MarshalJSON serializes the warning as its bulletin string form.
func (w RainfallWarning) MarshalJSON() ([]byte, error) {
	return []byte(`"` + w.String() + `"`), nil
}

// UnmarshalJSON accepts the bulletin string form, treating unknown values as
// no warning.
func (w *RainfallWarning) UnmarshalJSON(data []byte) error {
	*w = ParseRainfallWarning(strings.Trim(string(data), `"`))
	return nil
}

// TyphoonStatus is the per-date bulletin state produced by the external
// PAGASA scraper. Read-only input to the pipeline.
type TyphoonStatus struct {
	Date             string `json:"date"`
	HasActiveTyphoon bool   `json:"has_active_typhoon"`
	TyphoonName      string `json:"typhoon_name"`
	WindSignalLevel  int    `json:"wind_signal_level"`
	RegionAffected   bool   `json:"region_affected"`
	RainfallWarning  string `json:"rainfall_warning_level"`
}

// EffectiveWindSignal gates the raw bulletin signal level: a unit outside the
// storm's reported affected area must not inherit a signal raised for other
// regions, so the effective level is 0 there regardless of the raw level.
func EffectiveWindSignal(status TyphoonStatus) int {
	if !status.RegionAffected {
		return 0
	}
	if status.WindSignalLevel < 0 {
		return 0
	}
	if status.WindSignalLevel > MaxWindSignal {
		return MaxWindSignal
	}
	return status.WindSignalLevel
}

// TyphoonContext is the audit trail attached to each prediction: the
// effective level used in decisions alongside the raw bulletin level.
type TyphoonContext struct {
	HasActiveTyphoon    bool            `json:"has_active_typhoon"`
	TyphoonName         string          `json:"typhoon_name,omitempty"`
	EffectiveWindSignal int             `json:"tcws_level"`
	RawWindSignal       int             `json:"raw_tcws_level"`
	RegionAffected      bool            `json:"region_affected"`
	RainfallWarning     RainfallWarning `json:"rainfall_warning_level"`
}

// ContextFor derives the prediction audit context from a bulletin status.
func ContextFor(status TyphoonStatus) TyphoonContext {
	return TyphoonContext{
		HasActiveTyphoon:    status.HasActiveTyphoon,
		TyphoonName:         status.TyphoonName,
		EffectiveWindSignal: EffectiveWindSignal(status),
		RawWindSignal:       status.WindSignalLevel,
		RegionAffected:      status.RegionAffected,
		RainfallWarning:     ParseRainfallWarning(status.RainfallWarning),
	}
}
