package stats

import (
	"math"

	"statease/domain/analysis"
)

// CohensD builds the effect size record for a standardized mean difference.
// The qualitative label uses the conventional fixed cutoffs on |d|.
func CohensD(d float64) analysis.CohensD {
	return analysis.CohensD{CohensD: d, Interpretation: interpretCohensD(d)}
}

func interpretCohensD(d float64) string {
	abs := math.Abs(d)
	switch {
	case abs < 0.2:
		return "negligible"
	case abs < 0.5:
		return "small"
	case abs < 0.8:
		return "medium"
	default:
		return "large"
	}
}

// CramersVEffect builds the effect size record for a contingency table
// association. minDim is min(rows, cols); the cutoffs shrink with the
// smaller table dimension, following Cohen's w scaled by sqrt(min(r,c)-1).
func CramersVEffect(v float64, minDim int) analysis.CramersV {
	return analysis.CramersV{CramersV: v, Interpretation: interpretCramersV(v, minDim)}
}

func interpretCramersV(v float64, minDim int) string {
	df := float64(minDim - 1)
	if df < 1 {
		df = 1
	}
	scale := math.Sqrt(df)
	switch {
	case v < 0.1/scale:
		return "negligible"
	case v < 0.3/scale:
		return "small"
	case v < 0.5/scale:
		return "medium"
	default:
		return "large"
	}
}
