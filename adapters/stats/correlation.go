package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"statease/domain/analysis"
	"statease/internal/errors"
)

// PearsonCorrelation computes the product-moment correlation with a
// two-tailed p-value from the t approximation with n-2 degrees of freedom.
func PearsonCorrelation(sel *analysis.ResolvedSelection) (analysis.TestResult, error) {
	r, p, err := correlate(sel.Samples[0], sel.Samples[1])
	if err != nil {
		return nil, err
	}
	return analysis.NewCorrelationResult("pearson_correlation", r, p, sel.N), nil
}

// SpearmanCorrelation is Pearson on average-rank transformed values, so a
// tie-free input reproduces the textbook rank-difference formula exactly.
func SpearmanCorrelation(sel *analysis.ResolvedSelection) (analysis.TestResult, error) {
	r, p, err := correlate(averageRanks(sel.Samples[0]), averageRanks(sel.Samples[1]))
	if err != nil {
		return nil, err
	}
	return analysis.NewCorrelationResult("spearman_correlation", r, p, sel.N), nil
}

func correlate(x, y []float64) (r, p float64, err error) {
	if sampleVariance(x) == 0 || sampleVariance(y) == 0 {
		return 0, 0, errors.NumericalError("correlation is undefined when a variable has zero variance")
	}
	r = stat.Correlation(x, y, nil)
	// Guard against floating point drift past the mathematical bounds.
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}

	n := float64(len(x))
	df := n - 2
	if r == 1 || r == -1 {
		return r, 0, nil
	}
	t := r * math.Sqrt(df/(1-r*r))
	return r, TTestPValue(t, df), nil
}
