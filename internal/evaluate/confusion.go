package evaluate

// Counts is a confusion matrix over matched pairs. Derived data: always
// recomputed from raw pairs, never accumulated statefully, so any slice can
// be re-derived and cross-checked by a direct recount.
type Counts struct {
	TP int `json:"true_positives"`
	FP int `json:"false_positives"`
	FN int `json:"false_negatives"`
	TN int `json:"true_negatives"`
}

// Total is the number of pairs with known outcomes in the slice.
func (c Counts) Total() int {
	return c.TP + c.FP + c.FN + c.TN
}

func (c *Counts) add(predicted, actual bool) {
	switch {
	case predicted && actual:
		c.TP++
	case predicted && !actual:
		c.FP++
	case !predicted && actual:
		c.FN++
	default:
		c.TN++
	}
}

// Count tallies a confusion matrix from matched pairs.
func Count(pairs []Pair) Counts {
	var c Counts
	for _, p := range pairs {
		c.add(p.Predicted, p.Actual)
	}
	return c
}

// Metrics are the derived accuracy scores for one slice. Suspensions are
// rare events, so zero-count slices are expected: every ratio resolves a
// zero denominator to 0 instead of NaN or an error.
type Metrics struct {
	Counts

	Accuracy    float64 `json:"accuracy"`
	Precision   float64 `json:"precision"`
	Recall      float64 `json:"recall"`
	F1          float64 `json:"f1_score"`
	F2          float64 `json:"f2_score"`
	Specificity float64 `json:"specificity"`
}

// ComputeMetrics derives the metric set from a confusion matrix.
func ComputeMetrics(c Counts) Metrics {
	tp := float64(c.TP)
	fp := float64(c.FP)
	fn := float64(c.FN)
	tn := float64(c.TN)

	precision := safeDiv(tp, tp+fp)
	recall := safeDiv(tp, tp+fn)

	// F-beta with beta=2 weights recall higher than precision: a missed
	// suspension strands students, a false alarm costs a school day.
	const beta2 = 4

	return Metrics{
		Counts:      c,
		Accuracy:    safeDiv(tp+tn, tp+fp+fn+tn),
		Precision:   precision,
		Recall:      recall,
		F1:          safeDiv(2*precision*recall, precision+recall),
		F2:          safeDiv((1+beta2)*precision*recall, beta2*precision+recall),
		Specificity: safeDiv(tn, tn+fp),
	}
}

// safeDiv returns num/den, or 0 when den is 0.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
