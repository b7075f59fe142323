package analysis

import (
	"encoding/json"
	"math"
)

// TestResult is the closed set of per-test result records. Each variant
// carries its own strongly typed fields; consumers switch on Kind.
type TestResult interface {
	Kind() string
}

// GroupStats summarizes one group in a two-sample comparison.
type GroupStats struct {
	Name string  `json:"name"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	N    int     `json:"n"`
}

// CohensD pairs a standardized mean difference with its qualitative label.
// The label is always populated.
type CohensD struct {
	CohensD        float64 `json:"cohens_d"`
	Interpretation string  `json:"interpretation"`
}

// CramersV pairs the association strength with its qualitative label.
type CramersV struct {
	CramersV       float64 `json:"cramers_v"`
	Interpretation string  `json:"interpretation"`
}

// PostHocComparison is one Tukey HSD pair from an ANOVA.
type PostHocComparison struct {
	Group1   string  `json:"group1"`
	Group2   string  `json:"group2"`
	MeanDiff float64 `json:"mean_diff"`
	PValue   float64 `json:"p_value"`
	Reject   bool    `json:"reject"`
}

// IndependentTResult is the outcome of the two-sample Student's t-test.
type IndependentTResult struct {
	TStatistic float64    `json:"t_statistic"`
	PValue     float64    `json:"p_value"`
	DF         int        `json:"df"`
	Group1     GroupStats `json:"group1"`
	Group2     GroupStats `json:"group2"`
	EffectSize CohensD    `json:"effect_size"`
}

func (IndependentTResult) Kind() string { return "independent_t_test" }

// PairedTResult is the outcome of the paired t-test on per-row differences.
type PairedTResult struct {
	TStatistic     float64 `json:"t_statistic"`
	PValue         float64 `json:"p_value"`
	DF             int     `json:"df"`
	Mean1          float64 `json:"mean1"`
	Mean2          float64 `json:"mean2"`
	MeanDifference float64 `json:"mean_difference"`
	StdDifference  float64 `json:"std_difference"`
	N              int     `json:"n"`
	EffectSize     CohensD `json:"effect_size"`
}

func (PairedTResult) Kind() string { return "paired_t_test" }

// AnovaResult is the outcome of a one-way ANOVA with Tukey HSD post-hoc
// comparisons for every group pair.
type AnovaResult struct {
	FStatistic float64             `json:"f_statistic"`
	PValue     float64             `json:"p_value"`
	DFBetween  int                 `json:"df_between"`
	DFWithin   int                 `json:"df_within"`
	GroupMeans map[string]float64  `json:"group_means"`
	PostHoc    []PostHocComparison `json:"post_hoc"`
}

func (AnovaResult) Kind() string { return "one_way_anova" }

// CorrelationResult is shared by Pearson and Spearman; the kind tag
// distinguishes them.
type CorrelationResult struct {
	kind        string
	Correlation float64 `json:"correlation"`
	PValue      float64 `json:"p_value"`
	N           int     `json:"n"`
}

// NewCorrelationResult builds a correlation result with the given kind tag.
func NewCorrelationResult(kind string, r, p float64, n int) CorrelationResult {
	return CorrelationResult{kind: kind, Correlation: r, PValue: p, N: n}
}

func (r CorrelationResult) Kind() string { return r.kind }

// ChiSquareResult is the outcome of the chi-square test of independence.
type ChiSquareResult struct {
	Chi2       float64  `json:"chi2"`
	PValue     float64  `json:"p_value"`
	DF         int      `json:"df"`
	N          int      `json:"n"`
	EffectSize CramersV `json:"effect_size"`
}

func (ChiSquareResult) Kind() string { return "chi_square_test" }

// Coefficient is one fitted regression term.
type Coefficient struct {
	Name     string  `json:"name"`
	Estimate float64 `json:"estimate"`
}

// RegressionResult is the outcome of an ordinary least squares fit.
type RegressionResult struct {
	Coefficients []Coefficient `json:"coefficients"`
	RSquared     float64       `json:"r_squared"`
	FStatistic   float64       `json:"f_statistic"`
	PValue       float64       `json:"p_value"`
	DFModel      int           `json:"df_model"`
	DFResidual   int           `json:"df_residual"`
	N            int           `json:"n"`
}

func (RegressionResult) Kind() string { return "linear_regression" }

// MarshalJSON renders a perfect-fit result (infinite F) with a null
// f_statistic, since JSON has no infinity literal.
func (r RegressionResult) MarshalJSON() ([]byte, error) {
	type alias struct {
		Coefficients []Coefficient `json:"coefficients"`
		RSquared     float64       `json:"r_squared"`
		FStatistic   *float64      `json:"f_statistic"`
		PValue       float64       `json:"p_value"`
		DFModel      int           `json:"df_model"`
		DFResidual   int           `json:"df_residual"`
		N            int           `json:"n"`
	}
	a := alias{
		Coefficients: r.Coefficients,
		RSquared:     r.RSquared,
		PValue:       r.PValue,
		DFModel:      r.DFModel,
		DFResidual:   r.DFResidual,
		N:            r.N,
	}
	if !math.IsInf(r.FStatistic, 0) {
		f := r.FStatistic
		a.FStatistic = &f
	}
	return json.Marshal(a)
}

// MannWhitneyResult is the outcome of the Mann-Whitney U test.
type MannWhitneyResult struct {
	UStatistic float64 `json:"u_statistic"`
	ZStatistic float64 `json:"z_statistic"`
	PValue     float64 `json:"p_value"`
	N1         int     `json:"n1"`
	N2         int     `json:"n2"`
}

func (MannWhitneyResult) Kind() string { return "mann_whitney_u" }

// ShapiroWilkResult is the outcome of the Shapiro-Wilk normality test.
type ShapiroWilkResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	N         int     `json:"n"`
}

func (ShapiroWilkResult) Kind() string { return "shapiro_wilk_test" }

// LeveneResult is the outcome of Levene's test for equality of variances.
type LeveneResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	N         int     `json:"n"`
}

func (LeveneResult) Kind() string { return "levene_test" }
