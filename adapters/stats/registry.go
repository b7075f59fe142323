package stats

import (
	"statease/domain/analysis"
	"statease/domain/dataset"
	"statease/internal/errors"
)

// Registry is the process-wide catalog of supported tests. It is built once
// at startup and never mutated afterwards.
type Registry struct {
	specs []analysis.TestSpec
	byID  map[analysis.TestID]int
}

// NewRegistry builds the catalog. List order follows declaration order here,
// which callers rely on for stable display ordering.
func NewRegistry() *Registry {
	numeric := dataset.TypeNumeric
	categorical := dataset.TypeCategorical

	specs := []analysis.TestSpec{
		{
			ID:          analysis.TestIndependentT,
			Kind:        "independent_t_test",
			Name:        "Independent t-test",
			Category:    analysis.CategoryComparison,
			Arity:       1,
			SlotTypes:   []dataset.ColumnType{numeric},
			NeedsGroup:  true,
			MinGroups:   2,
			MaxGroups:   2,
			MinPerGroup: 2,
			Assumptions: []string{
				"Observations are independent between groups",
				"Values in each group are approximately normal",
				"Group variances are equal",
			},
		},
		{
			ID:        analysis.TestPairedT,
			Kind:      "paired_t_test",
			Name:      "Paired t-test",
			Category:  analysis.CategoryComparison,
			Arity:     2,
			SlotTypes: []dataset.ColumnType{numeric, numeric},
			MinN:      2,
			Assumptions: []string{
				"Observations are paired by row",
				"Differences are approximately normal",
			},
		},
		{
			ID:          analysis.TestANOVA,
			Kind:        "one_way_anova",
			Name:        "One-way ANOVA",
			Category:    analysis.CategoryComparison,
			Arity:       1,
			SlotTypes:   []dataset.ColumnType{numeric},
			NeedsGroup:  true,
			MinGroups:   3,
			MinPerGroup: 3,
			Assumptions: []string{
				"Observations are independent between groups",
				"Values in each group are approximately normal",
				"Group variances are equal",
			},
		},
		{
			ID:        analysis.TestPearson,
			Kind:      "pearson_correlation",
			Name:      "Pearson correlation",
			Category:  analysis.CategoryCorrelation,
			Arity:     2,
			SlotTypes: []dataset.ColumnType{numeric, numeric},
			MinN:      3,
			Assumptions: []string{
				"Both variables are approximately normal",
				"Relationship is linear",
			},
		},
		{
			ID:        analysis.TestSpearman,
			Kind:      "spearman_correlation",
			Name:      "Spearman correlation",
			Category:  analysis.CategoryCorrelation,
			Arity:     2,
			SlotTypes: []dataset.ColumnType{numeric, numeric},
			MinN:      3,
			Assumptions: []string{
				"Relationship is monotonic",
			},
		},
		{
			ID:        analysis.TestChiSquare,
			Kind:      "chi_square_test",
			Name:      "Chi-square test of independence",
			Category:  analysis.CategoryComparison,
			Arity:     2,
			SlotTypes: []dataset.ColumnType{categorical, categorical},
			MinN:      1,
			Assumptions: []string{
				"Observations are independent",
				"Expected cell counts are at least 5",
			},
		},
		{
			ID:        analysis.TestLinearRegression,
			Kind:      "linear_regression",
			Name:      "Linear regression",
			Category:  analysis.CategoryRegression,
			Arity:     analysis.ArityUnbounded,
			SlotTypes: []dataset.ColumnType{numeric},
			Assumptions: []string{
				"Relationship is linear in the predictors",
				"Residuals are approximately normal",
				"Residual variance is constant",
			},
		},
		{
			ID:          analysis.TestMannWhitney,
			Kind:        "mann_whitney_u",
			Name:        "Mann-Whitney U test",
			Category:    analysis.CategoryNonparametric,
			Arity:       1,
			SlotTypes:   []dataset.ColumnType{numeric},
			NeedsGroup:  true,
			MinGroups:   2,
			MaxGroups:   2,
			MinPerGroup: 1,
			Assumptions: []string{
				"Observations are independent between groups",
				"Values are at least ordinal",
			},
		},
		{
			ID:        analysis.TestShapiroWilk,
			Kind:      "shapiro_wilk_test",
			Name:      "Shapiro-Wilk normality test",
			Category:  analysis.CategoryNormality,
			Arity:     1,
			SlotTypes: []dataset.ColumnType{numeric},
			MinN:      3,
			MaxN:      5000,
			Assumptions: []string{
				"Observations are independent",
			},
		},
		{
			ID:          analysis.TestLevene,
			Kind:        "levene_test",
			Name:        "Levene's test",
			Category:    analysis.CategoryNormality,
			Arity:       1,
			SlotTypes:   []dataset.ColumnType{numeric},
			NeedsGroup:  true,
			MinGroups:   2,
			MinPerGroup: 2,
			Assumptions: []string{
				"Observations are independent between groups",
			},
		},
	}

	byID := make(map[analysis.TestID]int, len(specs))
	for i := range specs {
		byID[specs[i].ID] = i
	}
	return &Registry{specs: specs, byID: byID}
}

// Lookup returns the spec for id, or a validation error for unknown ids.
func (r *Registry) Lookup(id analysis.TestID) (analysis.TestSpec, error) {
	i, ok := r.byID[id]
	if !ok {
		return analysis.TestSpec{}, errors.ValidationError("unknown test id %q", id)
	}
	return r.specs[i], nil
}

// List returns every spec in declaration order. The returned slice is a
// copy; callers cannot mutate registry state through it.
func (r *Registry) List() []analysis.TestSpec {
	out := make([]analysis.TestSpec, len(r.specs))
	copy(out, r.specs)
	return out
}
