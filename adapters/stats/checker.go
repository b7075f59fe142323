package stats

import (
	"strconv"

	"statease/domain/analysis"
	"statease/domain/dataset"
	"statease/internal/errors"
)

// maxCategoricalCardinality bounds how many distinct values a numeric column
// may have and still be accepted in a categorical slot.
const maxCategoricalCardinality = 10

// Checker validates a test selection against the registry and the dataset,
// producing a ResolvedSelection with missing values already excluded and
// groups partitioned. Checks run in a fixed order and stop at the first
// failure.
type Checker struct {
	registry *Registry
}

func NewChecker(registry *Registry) *Checker {
	return &Checker{registry: registry}
}

// Validate runs the full check sequence: test id, arity, column existence,
// slot types, group partitioning, and minimum sizes. Minimums are evaluated
// on post-exclusion data.
func (c *Checker) Validate(ds *dataset.Dataset, sel analysis.Selection) (*analysis.ResolvedSelection, error) {
	spec, err := c.registry.Lookup(sel.TestID)
	if err != nil {
		return nil, err
	}

	if spec.Arity == analysis.ArityUnbounded {
		if len(sel.Variables) < 2 {
			return nil, errors.ValidationError("%s requires at least 2 variables, got %d", spec.Name, len(sel.Variables))
		}
	} else if len(sel.Variables) != spec.Arity {
		return nil, errors.ValidationError("%s requires exactly %d variable(s), got %d", spec.Name, spec.Arity, len(sel.Variables))
	}

	cols := make([]*dataset.Column, len(sel.Variables))
	for i, name := range sel.Variables {
		col, ok := ds.Column(name)
		if !ok {
			return nil, errors.ValidationError("column %q not found in dataset", name)
		}
		if err := checkSlotType(col, slotType(spec, i)); err != nil {
			return nil, err
		}
		cols[i] = col
	}

	var groupCol *dataset.Column
	if spec.NeedsGroup {
		if sel.GroupVariable == "" {
			return nil, errors.ValidationError("%s requires a group variable", spec.Name)
		}
		col, ok := ds.Column(sel.GroupVariable)
		if !ok {
			return nil, errors.ValidationError("group column %q not found in dataset", sel.GroupVariable)
		}
		if err := checkSlotType(col, dataset.TypeCategorical); err != nil {
			return nil, err
		}
		groupCol = col
	}

	resolved := &analysis.ResolvedSelection{
		Spec:          spec,
		Variables:     sel.Variables,
		GroupVariable: sel.GroupVariable,
	}

	// Listwise deletion scoped to the columns this test actually touches.
	// For two-variable correlations this coincides with pairwise deletion.
	rows := completeRows(ds.NumRows(), cols, groupCol)
	resolved.N = len(rows)

	for i, col := range cols {
		if slotType(spec, i) == dataset.TypeNumeric {
			resolved.Samples = append(resolved.Samples, extractNumeric(col, rows))
		} else {
			resolved.Labels = append(resolved.Labels, extractLabels(col, rows))
		}
	}

	if spec.NeedsGroup {
		groups, err := partitionGroups(spec, resolved.Samples[0], extractLabels(groupCol, rows))
		if err != nil {
			return nil, err
		}
		resolved.Groups = groups
	}

	if err := checkMinimums(spec, resolved); err != nil {
		return nil, err
	}
	return resolved, nil
}

func slotType(spec analysis.TestSpec, i int) dataset.ColumnType {
	if i < len(spec.SlotTypes) {
		return spec.SlotTypes[i]
	}
	// Unbounded-arity tests reuse the last declared slot type.
	return spec.SlotTypes[len(spec.SlotTypes)-1]
}

func checkSlotType(col *dataset.Column, want dataset.ColumnType) error {
	switch want {
	case dataset.TypeNumeric:
		if col.Type != dataset.TypeNumeric {
			return errors.ValidationError("column %q must be numeric, got %s", col.Name, col.Type)
		}
	case dataset.TypeCategorical:
		if col.Type == dataset.TypeCategorical {
			return nil
		}
		// Low-cardinality numeric columns pass as categorical.
		if col.Type == dataset.TypeNumeric && col.DistinctCount() <= maxCategoricalCardinality {
			return nil
		}
		return errors.ValidationError("column %q must be categorical or low-cardinality, got %s with %d distinct values", col.Name, col.Type, col.DistinctCount())
	}
	return nil
}

// completeRows returns the indices of rows with no missing value in any of
// the given columns.
func completeRows(nRows int, cols []*dataset.Column, groupCol *dataset.Column) []int {
	rows := make([]int, 0, nRows)
	for i := 0; i < nRows; i++ {
		keep := true
		for _, col := range cols {
			if col.Missing(i) {
				keep = false
				break
			}
		}
		if keep && groupCol != nil && groupCol.Missing(i) {
			keep = false
		}
		if keep {
			rows = append(rows, i)
		}
	}
	return rows
}

func extractNumeric(col *dataset.Column, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = col.Numeric[r]
	}
	return out
}

func extractLabels(col *dataset.Column, rows []int) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		if col.Type == dataset.TypeNumeric {
			out[i] = strconv.FormatFloat(col.Numeric[r], 'g', -1, 64)
		} else {
			out[i] = col.Labels[r]
		}
	}
	return out
}

// partitionGroups splits values by group label, preserving first-appearance
// order of the labels.
func partitionGroups(spec analysis.TestSpec, values []float64, labels []string) ([]analysis.Group, error) {
	order := make([]string, 0, 4)
	byName := make(map[string][]float64)
	for i, label := range labels {
		if _, seen := byName[label]; !seen {
			order = append(order, label)
		}
		byName[label] = append(byName[label], values[i])
	}

	if len(order) < spec.MinGroups {
		return nil, errors.InsufficientData("%s requires at least %d groups, found %d after excluding missing values", spec.Name, spec.MinGroups, len(order))
	}
	if spec.MaxGroups > 0 && len(order) > spec.MaxGroups {
		return nil, errors.ValidationError("%s requires exactly %d groups, found %d", spec.Name, spec.MaxGroups, len(order))
	}

	groups := make([]analysis.Group, len(order))
	for i, name := range order {
		groups[i] = analysis.Group{Name: name, Values: byName[name]}
	}
	return groups, nil
}

func checkMinimums(spec analysis.TestSpec, resolved *analysis.ResolvedSelection) error {
	for _, g := range resolved.Groups {
		if len(g.Values) < spec.MinPerGroup {
			return errors.InsufficientData("group %q has %d observation(s); %s requires at least %d per group", g.Name, len(g.Values), spec.Name, spec.MinPerGroup)
		}
	}
	if spec.MinN > 0 && resolved.N < spec.MinN {
		return errors.InsufficientData("%s requires at least %d observations, got %d after excluding missing values", spec.Name, spec.MinN, resolved.N)
	}
	if spec.MaxN > 0 && resolved.N > spec.MaxN {
		return errors.UnsupportedRange("%s supports at most %d observations, got %d", spec.Name, spec.MaxN, resolved.N)
	}
	if spec.ID == analysis.TestLinearRegression {
		p := len(resolved.Samples) - 1
		if resolved.N < p+2 {
			return errors.InsufficientData("linear regression with %d predictor(s) requires at least %d observations, got %d", p, p+2, resolved.N)
		}
	}
	if spec.ID == analysis.TestChiSquare {
		for i, labels := range resolved.Labels {
			if distinctLabels(labels) < 2 {
				return errors.InsufficientData("column %q has fewer than 2 distinct values after excluding missing values", resolved.Variables[i])
			}
		}
	}
	return nil
}

func distinctLabels(labels []string) int {
	seen := make(map[string]struct{}, 8)
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	return len(seen)
}
