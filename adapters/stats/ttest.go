package stats

import (
	"math"

	"statease/domain/analysis"
	"statease/internal/errors"
)

// IndependentTTest runs the equal-variance Student's t-test on two groups.
// The pooled formulation is the documented default; no homogeneity pre-check
// is performed.
func IndependentTTest(sel *analysis.ResolvedSelection) (analysis.TestResult, error) {
	g1, g2 := sel.Groups[0], sel.Groups[1]
	n1, n2 := len(g1.Values), len(g2.Values)
	m1, m2 := mean(g1.Values), mean(g2.Values)
	v1, v2 := sampleVariance(g1.Values), sampleVariance(g2.Values)

	df := n1 + n2 - 2
	pooledVar := (float64(n1-1)*v1 + float64(n2-1)*v2) / float64(df)
	if pooledVar == 0 {
		return nil, errors.NumericalError("both groups have zero variance; t statistic is undefined")
	}
	pooledSD := math.Sqrt(pooledVar)

	se := pooledSD * math.Sqrt(1/float64(n1)+1/float64(n2))
	t := (m1 - m2) / se
	p := TTestPValue(t, float64(df))
	d := (m1 - m2) / pooledSD

	return analysis.IndependentTResult{
		TStatistic: t,
		PValue:     p,
		DF:         df,
		Group1:     analysis.GroupStats{Name: g1.Name, Mean: m1, Std: math.Sqrt(v1), N: n1},
		Group2:     analysis.GroupStats{Name: g2.Name, Mean: m2, Std: math.Sqrt(v2), N: n2},
		EffectSize: CohensD(d),
	}, nil
}

// PairedTTest runs the paired t-test on per-row differences of two aligned
// numeric variables.
func PairedTTest(sel *analysis.ResolvedSelection) (analysis.TestResult, error) {
	x, y := sel.Samples[0], sel.Samples[1]
	n := len(x)

	diffs := make([]float64, n)
	for i := range x {
		diffs[i] = x[i] - y[i]
	}
	meanDiff := mean(diffs)
	sdDiff := sampleStdDev(diffs)
	if sdDiff == 0 {
		return nil, errors.NumericalError("all paired differences are identical; t statistic is undefined")
	}

	t := meanDiff / (sdDiff / math.Sqrt(float64(n)))
	df := n - 1
	p := TTestPValue(t, float64(df))

	return analysis.PairedTResult{
		TStatistic:     t,
		PValue:         p,
		DF:             df,
		Mean1:          mean(x),
		Mean2:          mean(y),
		MeanDifference: meanDiff,
		StdDifference:  sdDiff,
		N:              n,
		EffectSize:     CohensD(meanDiff / sdDiff),
	}, nil
}
