// Command validate checks a prediction batch against recorded suspension
// outcomes: feature schema integrity, unit name canonicalization, prediction
// to outcome matching, and the full accuracy report with per-date, per-LGU,
// and per-tier breakdowns.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -predictions data/predictions.json \
//	  -outcomes data/outcomes.json \
//	  -features data/vectors.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/stormsignal/suspension-pipeline/internal/domain"
	"github.com/stormsignal/suspension-pipeline/internal/evaluate"
	"github.com/stormsignal/suspension-pipeline/internal/tier"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	predictionsPath := flag.String("predictions", "", "path to predictions JSON")
	outcomesPath := flag.String("outcomes", "", "path to recorded outcomes JSON")
	featuresPath := flag.String("features", "", "optional path to feature vectors JSON for schema checks")
	flag.Parse()

	if *predictionsPath == "" || *outcomesPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*predictionsPath, *outcomesPath, *featuresPath); code != 0 {
		os.Exit(code)
	}
}

func run(predictionsPath, outcomesPath, featuresPath string) int {
	fmt.Println("=== Suspension Prediction Validation ===")
	fmt.Println()

	units := domain.DefaultUnitTable()

	predictions, err := loadJSON[domain.Prediction](predictionsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load predictions: %v\n", err)
		return 1
	}

	outcomes, err := loadJSON[domain.ActualOutcome](outcomesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load outcomes: %v\n", err)
		return 1
	}

	var vectors []domain.FeatureVector
	if featuresPath != "" {
		vectors, err = loadJSON[domain.FeatureVector](featuresPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load feature vectors: %v\n", err)
			return 1
		}
	}

	phases := []*phase{
		validateFeatureSchema(vectors, units),
		validateCanonicalization(predictions, outcomes, units),
		validatePredictionFields(predictions),
	}

	match := evaluate.Match(predictions, canonicalOutcomes(outcomes, units))
	phases = append(phases, validateCoverage(match))

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d predictions, %d outcomes, %d matched pairs\n",
		len(predictions), len(outcomes), len(match.Pairs))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	printReport(evaluate.BuildReport(match))

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func canonicalOutcomes(outcomes []domain.ActualOutcome, units *domain.UnitTable) []domain.ActualOutcome {
	out := make([]domain.ActualOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		o.Unit = domain.NormalizeUnitName(o.Unit)
		if !units.Contains(o.Unit) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// ── Phase 1: Feature Schema ──
// Validates that every vector carries the full ordered feature set.

func validateFeatureSchema(vectors []domain.FeatureVector, units *domain.UnitTable) *phase {
	p := &phase{name: "Phase 1: Feature Schema"}
	if len(vectors) == 0 {
		p.name = "Phase 1: Feature Schema (skipped)"
		return p
	}

	for i, v := range vectors {
		if err := v.Validate(); err != nil {
			p.errorf("vector %d: %v", i, err)
			continue
		}
		if !units.Contains(v.Unit) {
			p.errorf("vector %d: unknown unit %q", i, v.Unit)
		}
		if id, ok := v.Value("lgu_id"); ok {
			want, _ := units.Index(v.Unit)
			if int(id) != want {
				p.errorf("vector %d: lgu_id %g does not match index %d for %s", i, id, want, v.Unit)
			}
		}
	}
	return p
}

// ── Phase 2: Canonicalization ──
// Validates that both sides carry canonical unit names from the tracked set.

func validateCanonicalization(predictions []domain.Prediction, outcomes []domain.ActualOutcome, units *domain.UnitTable) *phase {
	p := &phase{name: "Phase 2: Unit Canonicalization"}

	for i, pred := range predictions {
		if pred.Unit != domain.NormalizeUnitName(pred.Unit) {
			p.errorf("prediction %d: unit %q is not canonical", i, pred.Unit)
		} else if !units.Contains(pred.Unit) {
			p.errorf("prediction %d: unknown unit %q", i, pred.Unit)
		}
	}
	for i, o := range outcomes {
		canonical := domain.NormalizeUnitName(o.Unit)
		if !units.Contains(canonical) {
			p.errorf("outcome %d: unit %q not in tracked set (dropped from metrics)", i, o.Unit)
		}
	}
	return p
}

// ── Phase 3: Prediction Fields ──
// Validates probability range, tier assignment, and threshold consistency.

func validatePredictionFields(predictions []domain.Prediction) *phase {
	p := &phase{name: "Phase 3: Prediction Consistency"}

	for i, pred := range predictions {
		if pred.Probability < 0 || pred.Probability > 1 {
			p.errorf("prediction %d (%s/%s): probability %g outside [0, 1]",
				i, pred.Unit, pred.Date, pred.Probability)
			continue
		}
		if want := tier.Assign(pred.Probability); pred.RiskTier.Tier != want {
			p.errorf("prediction %d (%s/%s): tier %q does not match probability %g (want %q)",
				i, pred.Unit, pred.Date, pred.RiskTier.Tier, pred.Probability, want)
		}
		if want := pred.Probability >= pred.DecisionThreshold; pred.PredictedSuspended != want {
			p.errorf("prediction %d (%s/%s): predicted_suspended=%t inconsistent with probability %g and threshold %g",
				i, pred.Unit, pred.Date, pred.PredictedSuspended, pred.Probability, pred.DecisionThreshold)
		}
	}
	return p
}

// ── Phase 4: Coverage ──
// Reports prediction/outcome pairs that could not be matched. Gaps are
// informational, not failures: forecast-only predictions legitimately have
// no ground truth yet.

func validateCoverage(match evaluate.MatchResult) *phase {
	p := &phase{name: "Phase 4: Matching Coverage"}

	if n := len(match.PredictionsNoOutcome); n > 0 {
		fmt.Printf("  Note: %d prediction(s) have no recorded outcome yet\n", n)
	}
	if n := len(match.OutcomesNoPrediction); n > 0 {
		fmt.Printf("  Note: %d outcome(s) have no matching prediction\n", n)
	}
	if len(match.Pairs) == 0 {
		p.errorf("no (date, lgu) pairs matched between predictions and outcomes")
	}
	return p
}

// ── Report ──

func printReport(report evaluate.Report) {
	fmt.Println("\n=== Accuracy Report ===")
	fmt.Printf("Confusion matrix: TP=%d FP=%d FN=%d TN=%d (n=%d)\n",
		report.Overall.TP, report.Overall.FP, report.Overall.FN, report.Overall.TN,
		report.Overall.Total())
	fmt.Printf("Accuracy=%.3f Precision=%.3f Recall=%.3f F1=%.3f F2=%.3f Specificity=%.3f\n",
		report.Overall.Accuracy, report.Overall.Precision, report.Overall.Recall,
		report.Overall.F1, report.Overall.F2, report.Overall.Specificity)

	if len(report.ByDate) > 0 {
		fmt.Println("\nBy date:")
		for _, m := range report.ByDate {
			printSlice(m.Key, m.Metrics)
		}
	}
	if len(report.ByUnit) > 0 {
		fmt.Println("\nBy LGU:")
		for _, m := range report.ByUnit {
			printSlice(m.Key, m.Metrics)
		}
	}
	if len(report.ByTier) > 0 {
		fmt.Println("\nBy risk tier:")
		for _, t := range []tier.Tier{tier.Green, tier.Orange, tier.Red} {
			if m, ok := report.ByTier[t]; ok {
				printSlice(string(t), m)
			}
		}
	}

	fmt.Printf("\nCoverage gaps: %d predictions without outcome, %d outcomes without prediction\n",
		report.Gaps.PredictionsWithoutOutcome, report.Gaps.OutcomesWithoutPrediction)
}

func printSlice(key string, m evaluate.Metrics) {
	fmt.Printf("  %-16s n=%-4d acc=%.3f prec=%.3f rec=%.3f f2=%.3f\n",
		key, m.Total(), m.Accuracy, m.Precision, m.Recall, m.F2)
}
