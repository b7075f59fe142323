package stats

import (
	"math"

	"statease/domain/analysis"
	"statease/internal/errors"
)

// OneWayANOVA runs the classic between/within sum-of-squares decomposition
// over k groups and always attaches Tukey HSD comparisons for every pair.
func OneWayANOVA(sel *analysis.ResolvedSelection) (analysis.TestResult, error) {
	groups := sel.Groups
	k := len(groups)

	total := 0
	grandSum := 0.0
	for _, g := range groups {
		total += len(g.Values)
		for _, v := range g.Values {
			grandSum += v
		}
	}
	grandMean := grandSum / float64(total)

	ssBetween, ssWithin := 0.0, 0.0
	means := make(map[string]float64, k)
	for _, g := range groups {
		m := mean(g.Values)
		means[g.Name] = m
		d := m - grandMean
		ssBetween += float64(len(g.Values)) * d * d
		for _, v := range g.Values {
			e := v - m
			ssWithin += e * e
		}
	}

	dfBetween := k - 1
	dfWithin := total - k
	if ssWithin == 0 {
		return nil, errors.NumericalError("all groups have zero within-group variance; F statistic is undefined")
	}
	msBetween := ssBetween / float64(dfBetween)
	msWithin := ssWithin / float64(dfWithin)
	f := msBetween / msWithin
	p := FTestPValue(f, float64(dfBetween), float64(dfWithin))

	return analysis.AnovaResult{
		FStatistic: f,
		PValue:     p,
		DFBetween:  dfBetween,
		DFWithin:   dfWithin,
		GroupMeans: means,
		PostHoc:    tukeyHSD(groups, msWithin, dfWithin),
	}, nil
}

// tukeyHSD computes all pairwise comparisons with the Tukey-Kramer statistic
// q = |diff| / sqrt(MSW/2 * (1/ni + 1/nj)) and p-values from the studentized
// range distribution.
func tukeyHSD(groups []analysis.Group, msWithin float64, dfWithin int) []analysis.PostHocComparison {
	k := len(groups)
	var out []analysis.PostHocComparison
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			gi, gj := groups[i], groups[j]
			diff := mean(gi.Values) - mean(gj.Values)
			se := math.Sqrt(msWithin / 2 * (1/float64(len(gi.Values)) + 1/float64(len(gj.Values))))
			q := math.Abs(diff) / se
			p := 1 - StudentizedRangeCDF(q, float64(k), float64(dfWithin))
			p = clamp01(p)
			out = append(out, analysis.PostHocComparison{
				Group1:   gi.Name,
				Group2:   gj.Name,
				MeanDiff: diff,
				PValue:   p,
				Reject:   p < 0.05,
			})
		}
	}
	return out
}
