package stats

import (
	"math"

	"statease/domain/analysis"
	"statease/internal/errors"
)

// LeveneTest checks equality of variances across groups with the
// median-centered (Brown-Forsythe) formulation: a one-way ANOVA F statistic
// over absolute deviations from each group's median.
func LeveneTest(sel *analysis.ResolvedSelection) (analysis.TestResult, error) {
	groups := sel.Groups
	k := len(groups)

	deviations := make([][]float64, k)
	total := 0
	grandSum := 0.0
	for i, g := range groups {
		med := median(g.Values)
		zs := make([]float64, len(g.Values))
		for j, v := range g.Values {
			zs[j] = math.Abs(v - med)
			grandSum += zs[j]
		}
		deviations[i] = zs
		total += len(zs)
	}
	grandMean := grandSum / float64(total)

	ssBetween, ssWithin := 0.0, 0.0
	for _, zs := range deviations {
		m := mean(zs)
		d := m - grandMean
		ssBetween += float64(len(zs)) * d * d
		for _, z := range zs {
			e := z - m
			ssWithin += e * e
		}
	}
	if ssWithin == 0 {
		return nil, errors.NumericalError("absolute deviations are constant within every group; statistic is undefined")
	}

	dfBetween := k - 1
	dfWithin := total - k
	f := (ssBetween / float64(dfBetween)) / (ssWithin / float64(dfWithin))
	p := FTestPValue(f, float64(dfBetween), float64(dfWithin))

	return analysis.LeveneResult{Statistic: f, PValue: p, N: total}, nil
}
