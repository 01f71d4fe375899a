// Package tier maps classifier probabilities to the three-level risk scale
// used for class-suspension guidance.
//
// Thresholds were calibrated against model validation runs: clear weather
// (~15mm precipitation) scores around 0.38, heavy rain (~35mm) around 0.50,
// and typhoon conditions (65mm+) 0.55 and above. The bands are half-open on
// the lower bound: exactly 0.40 is alert, exactly 0.55 is suspension.
//
// Tier assignment is independent of the binary decision threshold applied to
// predicted_suspended. A probability of 0.45 is tier alert while still being
// below a 0.5 decision threshold; both signals are reported side by side.
package tier

import "fmt"

// Tier is a risk level for a (unit, date) suspension prediction.
type Tier string

const (
	Green  Tier = "normal"
	Orange Tier = "alert"
	Red    Tier = "suspension"
)

// Tier boundaries. Probabilities in [0, greenMax) are Green, [greenMax,
// orangeMax) are Orange, and [orangeMax, 1] are Red.
const (
	greenMax  = 0.40
	orangeMax = 0.55
)

// Assign maps a probability to its risk tier. Pure and total: identical
// probability always yields an identical tier, with no hysteresis.
func Assign(probability float64) Tier {
	switch {
	case probability < greenMax:
		return Green
	case probability < orangeMax:
		return Orange
	default:
		return Red
	}
}

// Details is the display bundle attached to a prediction record.
type Details struct {
	Tier               Tier     `json:"tier"`
	Color              string   `json:"color"`
	Title              string   `json:"title"`
	Subtitle           string   `json:"subtitle"`
	Recommendation     string   `json:"recommendation"`
	Actions            []string `json:"actions"`
	MonitoringInterval string   `json:"monitoring_interval"`
}

// DetailsFor returns the display bundle for a tier. When the effective wind
// signal is high enough (>=1 for Orange, >=2 for Red), typhoon-specific
// actions are appended; the signal never changes the tier itself.
func DetailsFor(t Tier, windSignal int) Details {
	switch t {
	case Orange:
		actions := []string{
			"Monitor updates every 2 hours",
			"Prepare early dismissal plan",
			"Coordinate with DRRM office",
			"Review evacuation procedures",
			"Activate weather monitoring team",
		}
		if windSignal >= 1 {
			actions = append(actions, "Monitor PAGASA typhoon bulletins")
		}
		return Details{
			Tier:               Orange,
			Color:              "#f97316",
			Title:              "WEATHER ALERT",
			Subtitle:           "Enhanced monitoring needed",
			Recommendation:     "Prepare for possible suspension",
			Actions:            actions,
			MonitoringInterval: "Enhanced monitoring (every 2 hours)",
		}
	case Red:
		actions := []string{
			"Issue suspension announcement",
			"Activate online/modular learning",
			"Monitor for multi-day impact",
			"Coordinate with local government",
			"Ensure student safety protocols active",
		}
		if windSignal >= 2 {
			actions = append(actions,
				"Activate disaster response protocols",
				"Secure school facilities",
			)
		}
		return Details{
			Tier:               Red,
			Color:              "#ef4444",
			Title:              "CLASS SUSPENSION",
			Subtitle:           "Severe weather conditions",
			Recommendation:     "SUSPEND face-to-face classes",
			Actions:            actions,
			MonitoringInterval: "Continuous monitoring (hourly)",
		}
	default:
		return Details{
			Tier:           Green,
			Color:          "#22c55e",
			Title:          "NORMAL CONDITIONS",
			Subtitle:       "Continue routine operations",
			Recommendation: "No suspension expected",
			Actions: []string{
				"Continue regular class schedule",
				"Monitor weather updates",
				"Maintain standard preparedness protocols",
			},
			MonitoringInterval: "Standard monitoring (daily)",
		}
	}
}

// WeatherContext holds human-readable weather strings for a prediction.
type WeatherContext struct {
	Description   string `json:"weather_desc,omitempty"`
	Precipitation string `json:"precipitation,omitempty"`
	Advisory      string `json:"pagasa_advisory,omitempty"`
}

// FormatWeatherContext builds display strings from forecast precipitation and
// the active advisory state. rainfallWarning is empty or one of
// YELLOW/ORANGE/RED; windSignal is the effective TCWS level.
func FormatWeatherContext(precipitationMM *float64, rainfallWarning string, windSignal int, typhoonName string) WeatherContext {
	var ctx WeatherContext

	if precipitationMM != nil {
		mm := *precipitationMM
		switch {
		case mm < 7.5:
			ctx.Description = "Light rain possible"
		case mm < 15:
			ctx.Description = "Moderate rain expected"
		case mm < 30:
			ctx.Description = "Heavy rain likely"
		case mm < 60:
			ctx.Description = "Very heavy rain expected"
		default:
			ctx.Description = "Intense rainfall expected"
		}
		ctx.Precipitation = fmt.Sprintf("%.1fmm precipitation", mm)
	}

	switch {
	case rainfallWarning != "":
		ctx.Advisory = fmt.Sprintf("PAGASA: %s Rainfall Warning", titleWord(rainfallWarning))
	case windSignal > 0:
		ctx.Advisory = fmt.Sprintf("PAGASA: TCWS Signal No. %d", windSignal)
		if typhoonName != "" {
			ctx.Advisory += fmt.Sprintf(" (%s)", typhoonName)
		}
	}

	return ctx
}

// titleWord upper-cases the first letter of an ASCII word and lower-cases the
// rest, e.g. "ORANGE" -> "Orange".
func titleWord(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	for i := 1; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// TierCount holds the count and share of one tier within a prediction set.
type TierCount struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Distribution summarizes how a set of probabilities splits across tiers.
type Distribution struct {
	Total  int       `json:"total_predictions"`
	Green  TierCount `json:"green"`
	Orange TierCount `json:"orange"`
	Red    TierCount `json:"red"`
}

// Summarize computes the tier distribution for a batch of probabilities.
func Summarize(probabilities []float64) Distribution {
	d := Distribution{Total: len(probabilities)}
	for _, p := range probabilities {
		switch Assign(p) {
		case Green:
			d.Green.Count++
		case Orange:
			d.Orange.Count++
		case Red:
			d.Red.Count++
		}
	}
	if d.Total > 0 {
		d.Green.Percentage = pct(d.Green.Count, d.Total)
		d.Orange.Percentage = pct(d.Orange.Count, d.Total)
		d.Red.Percentage = pct(d.Red.Count, d.Total)
	}
	return d
}

// Alerts returns the count of predictions at Orange or above.
func (d Distribution) Alerts() int {
	return d.Orange.Count + d.Red.Count
}

func pct(count, total int) float64 {
	return float64(count) / float64(total) * 100
}
