package stats

import (
	"fmt"
	"math"

	"statease/domain/analysis"
)

// Interpret renders the one-sentence plain-language summary for a computed
// result. It reads only the result's own fields; the wording mirrors how a
// methods section would report the test.
func Interpret(sel *analysis.ResolvedSelection, result analysis.TestResult) string {
	switch r := result.(type) {
	case analysis.IndependentTResult:
		return fmt.Sprintf(
			"Independent t-test between %s (M=%.2f, SD=%.2f) and %s (M=%.2f, SD=%.2f) showed %s difference, t(%d)=%.2f, p=%.3f. Cohen's d=%.2f (%s effect).",
			r.Group1.Name, r.Group1.Mean, r.Group1.Std,
			r.Group2.Name, r.Group2.Mean, r.Group2.Std,
			significance(r.PValue), r.DF, r.TStatistic, r.PValue,
			r.EffectSize.CohensD, r.EffectSize.Interpretation)
	case analysis.PairedTResult:
		return fmt.Sprintf(
			"Paired t-test showed %s difference between %s (M=%.2f) and %s (M=%.2f), t(%d)=%.2f, p=%.3f. Cohen's d=%.2f (%s effect).",
			significance(r.PValue), sel.Variables[0], r.Mean1, sel.Variables[1], r.Mean2,
			r.DF, r.TStatistic, r.PValue,
			r.EffectSize.CohensD, r.EffectSize.Interpretation)
	case analysis.AnovaResult:
		return fmt.Sprintf(
			"One-way ANOVA showed %s difference between groups, F(%d, %d)=%.2f, p=%.3f.",
			significance(r.PValue), r.DFBetween, r.DFWithin, r.FStatistic, r.PValue)
	case analysis.CorrelationResult:
		name, symbol := "Pearson", "r"
		if r.Kind() == "spearman_correlation" {
			name, symbol = "Spearman", "rho"
		}
		return fmt.Sprintf(
			"%s correlation showed %s relationship between %s and %s, %s(%d)=%.2f, p=%.3f.",
			name, significance(r.PValue), sel.Variables[0], sel.Variables[1],
			symbol, r.N-2, r.Correlation, r.PValue)
	case analysis.ChiSquareResult:
		return fmt.Sprintf(
			"Chi-square test showed %s association between %s and %s, chi2(%d)=%.2f, p=%.3f, Cramer's V=%.2f (%s effect).",
			significance(r.PValue), sel.Variables[0], sel.Variables[1],
			r.DF, r.Chi2, r.PValue, r.EffectSize.CramersV, r.EffectSize.Interpretation)
	case analysis.RegressionResult:
		if math.IsInf(r.FStatistic, 1) {
			return fmt.Sprintf(
				"Linear regression of %s fit the data exactly, R²=%.2f; the residual-based significance test is degenerate.",
				sel.Variables[0], r.RSquared)
		}
		return fmt.Sprintf(
			"Linear regression of %s showed %s overall fit, R²=%.2f, F(%d, %d)=%.2f, p=%.3f.",
			sel.Variables[0], significance(r.PValue),
			r.RSquared, r.DFModel, r.DFResidual, r.FStatistic, r.PValue)
	case analysis.MannWhitneyResult:
		return fmt.Sprintf(
			"Mann-Whitney U test showed %s difference between groups, U=%.1f, z=%.2f, p=%.3f.",
			significance(r.PValue), r.UStatistic, r.ZStatistic, r.PValue)
	case analysis.ShapiroWilkResult:
		verdict := "normally distributed"
		if r.PValue <= 0.05 {
			verdict = "not normally distributed"
		}
		return fmt.Sprintf("Shapiro-Wilk test showed the data is %s, W=%.2f, p=%.3f.", verdict, r.Statistic, r.PValue)
	case analysis.LeveneResult:
		verdict := "equal"
		if r.PValue <= 0.05 {
			verdict = "not equal"
		}
		return fmt.Sprintf("Levene's test showed variances are %s across groups, W=%.2f, p=%.3f.", verdict, r.Statistic, r.PValue)
	}
	return ""
}

func significance(p float64) string {
	if p < 0.05 {
		return "a significant"
	}
	return "no significant"
}
