package stats

import (
	"math"
	"testing"

	"statease/domain/analysis"
	"statease/domain/dataset"
	"statease/internal/errors"
)

func numericColumn(name string, values ...float64) dataset.Column {
	return dataset.Column{Name: name, Type: dataset.TypeNumeric, Numeric: values}
}

func categoricalColumn(name string, labels ...string) dataset.Column {
	return dataset.Column{Name: name, Type: dataset.TypeCategorical, Labels: labels}
}

func twoGroupDataset() *dataset.Dataset {
	return dataset.New([]dataset.Column{
		numericColumn("score", 10, 12, 9, 11, 10, 15, 14, 16, 15, 14),
		categoricalColumn("group", "A", "A", "A", "A", "A", "B", "B", "B", "B", "B"),
	})
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := errors.GetCode(err); got != code {
		t.Fatalf("expected code %s, got %s (%v)", code, got, err)
	}
}

func TestChecker_UnknownTestID(t *testing.T) {
	checker := NewChecker(NewRegistry())
	_, err := checker.Validate(twoGroupDataset(), analysis.Selection{TestID: "bogus"})
	expectCode(t, err, errors.CodeValidation)
}

func TestChecker_WrongArity(t *testing.T) {
	checker := NewChecker(NewRegistry())
	_, err := checker.Validate(twoGroupDataset(), analysis.Selection{
		TestID:    analysis.TestPearson,
		Variables: []string{"score"},
	})
	expectCode(t, err, errors.CodeValidation)
}

func TestChecker_MissingColumn(t *testing.T) {
	checker := NewChecker(NewRegistry())
	_, err := checker.Validate(twoGroupDataset(), analysis.Selection{
		TestID:        analysis.TestIndependentT,
		Variables:     []string{"no_such_column"},
		GroupVariable: "group",
	})
	expectCode(t, err, errors.CodeValidation)
}

func TestChecker_TypeMismatch(t *testing.T) {
	checker := NewChecker(NewRegistry())
	_, err := checker.Validate(twoGroupDataset(), analysis.Selection{
		TestID:        analysis.TestIndependentT,
		Variables:     []string{"group"},
		GroupVariable: "group",
	})
	expectCode(t, err, errors.CodeValidation)
}

func TestChecker_TooManyGroupsForTTest(t *testing.T) {
	ds := dataset.New([]dataset.Column{
		numericColumn("score", 1, 2, 3, 4, 5, 6),
		categoricalColumn("group", "A", "A", "B", "B", "C", "C"),
	})
	checker := NewChecker(NewRegistry())
	_, err := checker.Validate(ds, analysis.Selection{
		TestID:        analysis.TestIndependentT,
		Variables:     []string{"score"},
		GroupVariable: "group",
	})
	expectCode(t, err, errors.CodeValidation)
}

func TestChecker_GroupBelowMinimum(t *testing.T) {
	ds := dataset.New([]dataset.Column{
		numericColumn("score", 1, 2, 3, 4),
		categoricalColumn("group", "A", "A", "A", "B"),
	})
	checker := NewChecker(NewRegistry())
	_, err := checker.Validate(ds, analysis.Selection{
		TestID:        analysis.TestIndependentT,
		Variables:     []string{"score"},
		GroupVariable: "group",
	})
	expectCode(t, err, errors.CodeInsufficientData)
}

func TestChecker_AnovaNeedsThreeGroups(t *testing.T) {
	checker := NewChecker(NewRegistry())
	_, err := checker.Validate(twoGroupDataset(), analysis.Selection{
		TestID:        analysis.TestANOVA,
		Variables:     []string{"score"},
		GroupVariable: "group",
	})
	expectCode(t, err, errors.CodeInsufficientData)
}

func TestChecker_ShapiroWilkRangeBounds(t *testing.T) {
	checker := NewChecker(NewRegistry())

	small := dataset.New([]dataset.Column{numericColumn("x", 1, 2)})
	_, err := checker.Validate(small, analysis.Selection{
		TestID:    analysis.TestShapiroWilk,
		Variables: []string{"x"},
	})
	expectCode(t, err, errors.CodeInsufficientData)

	values := make([]float64, 5001)
	for i := range values {
		values[i] = float64(i)
	}
	big := dataset.New([]dataset.Column{{Name: "x", Type: dataset.TypeNumeric, Numeric: values}})
	_, err = checker.Validate(big, analysis.Selection{
		TestID:    analysis.TestShapiroWilk,
		Variables: []string{"x"},
	})
	expectCode(t, err, errors.CodeUnsupportedRange)
}

func TestChecker_PairwiseDeletionForCorrelation(t *testing.T) {
	ds := dataset.New([]dataset.Column{
		numericColumn("x", 1, 2, 3, 4, 5),
		numericColumn("y", 2, 4, math.NaN(), 8, 10),
	})
	checker := NewChecker(NewRegistry())
	resolved, err := checker.Validate(ds, analysis.Selection{
		TestID:    analysis.TestPearson,
		Variables: []string{"x", "y"},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if resolved.N != 4 {
		t.Fatalf("expected the row with the missing value excluded, n=4, got %d", resolved.N)
	}
	if len(resolved.Samples[0]) != 4 || len(resolved.Samples[1]) != 4 {
		t.Fatalf("samples not aligned after exclusion: %d and %d", len(resolved.Samples[0]), len(resolved.Samples[1]))
	}
}

func TestChecker_GroupsInFirstAppearanceOrder(t *testing.T) {
	ds := dataset.New([]dataset.Column{
		numericColumn("score", 1, 2, 3, 4, 5, 6),
		categoricalColumn("group", "B", "A", "B", "A", "B", "A"),
	})
	checker := NewChecker(NewRegistry())
	resolved, err := checker.Validate(ds, analysis.Selection{
		TestID:        analysis.TestIndependentT,
		Variables:     []string{"score"},
		GroupVariable: "group",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if resolved.Groups[0].Name != "B" || resolved.Groups[1].Name != "A" {
		t.Fatalf("expected first-appearance order [B A], got [%s %s]", resolved.Groups[0].Name, resolved.Groups[1].Name)
	}
}

func TestChecker_LowCardinalityNumericAsCategorical(t *testing.T) {
	ds := dataset.New([]dataset.Column{
		numericColumn("treatment", 0, 1, 0, 1, 0, 1),
		categoricalColumn("outcome", "yes", "no", "yes", "yes", "no", "no"),
	})
	checker := NewChecker(NewRegistry())
	resolved, err := checker.Validate(ds, analysis.Selection{
		TestID:    analysis.TestChiSquare,
		Variables: []string{"treatment", "outcome"},
	})
	if err != nil {
		t.Fatalf("low-cardinality numeric should satisfy a categorical slot: %v", err)
	}
	if resolved.Labels[0][0] != "0" || resolved.Labels[0][1] != "1" {
		t.Fatalf("numeric values should be formatted as labels, got %v", resolved.Labels[0][:2])
	}
}

func TestRegistry_ListIsDeclarationOrder(t *testing.T) {
	specs := NewRegistry().List()
	if len(specs) != 10 {
		t.Fatalf("expected 10 registered tests, got %d", len(specs))
	}
	if specs[0].ID != analysis.TestIndependentT || specs[9].ID != analysis.TestLevene {
		t.Fatalf("unexpected catalog order: first=%s last=%s", specs[0].ID, specs[9].ID)
	}
}
