package stats

import (
	"math"

	"statease/domain/analysis"
	"statease/internal/errors"
)

// MannWhitneyU runs the rank-sum comparison of two groups using the normal
// approximation with tie correction and a 0.5 continuity correction.
func MannWhitneyU(sel *analysis.ResolvedSelection) (analysis.TestResult, error) {
	g1, g2 := sel.Groups[0], sel.Groups[1]
	n1, n2 := len(g1.Values), len(g2.Values)
	total := n1 + n2

	combined := make([]float64, 0, total)
	combined = append(combined, g1.Values...)
	combined = append(combined, g2.Values...)
	ranks := averageRanks(combined)

	r1 := 0.0
	for i := 0; i < n1; i++ {
		r1 += ranks[i]
	}
	u1 := r1 - float64(n1)*float64(n1+1)/2
	u2 := float64(n1)*float64(n2) - u1
	u := math.Min(u1, u2)

	// Tie-corrected variance of U under the null.
	nn := float64(total)
	tieSum := 0.0
	for _, t := range tieGroups(combined) {
		tf := float64(t)
		tieSum += tf*tf*tf - tf
	}
	variance := float64(n1) * float64(n2) / 12 * ((nn + 1) - tieSum/(nn*(nn-1)))
	if variance == 0 {
		return nil, errors.NumericalError("all values are identical; U statistic has zero variance")
	}

	meanU := float64(n1) * float64(n2) / 2
	z := (u - meanU + 0.5) / math.Sqrt(variance)
	p := 2 * NormalCDF(-math.Abs(z))
	p = clamp01(p)

	return analysis.MannWhitneyResult{
		UStatistic: u,
		ZStatistic: z,
		PValue:     p,
		N1:         n1,
		N2:         n2,
	}, nil
}
