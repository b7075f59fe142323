package analysis

import "statease/domain/dataset"

// TestID is the stable key a caller uses to select a statistical test.
type TestID string

const (
	TestIndependentT     TestID = "independent_t"
	TestPairedT          TestID = "paired_t"
	TestANOVA            TestID = "anova"
	TestPearson          TestID = "pearson"
	TestSpearman         TestID = "spearman"
	TestChiSquare        TestID = "chi_square"
	TestLinearRegression TestID = "linear_regression"
	TestMannWhitney      TestID = "mann_whitney"
	TestShapiroWilk      TestID = "shapiro_wilk"
	TestLevene           TestID = "levene"
)

// Category groups tests for display purposes only; it has no effect on
// computation.
type Category string

const (
	CategoryComparison    Category = "comparison"
	CategoryCorrelation   Category = "correlation"
	CategoryRegression    Category = "regression"
	CategoryNonparametric Category = "nonparametric"
	CategoryNormality     Category = "normality"
)

// ArityUnbounded marks a test that accepts any number of variables >= 2
// (regression: dependent variable followed by predictors).
const ArityUnbounded = -1

// TestSpec is the declarative description of one statistical test: identity,
// display metadata, variable requirements, and structural minimums the
// assumption checker enforces. Specs are constant data; the registry never
// mutates them after startup.
type TestSpec struct {
	ID       TestID   `json:"id"`
	Kind     string   `json:"kind"` // result discriminator tag
	Name     string   `json:"name"`
	Category Category `json:"category"`

	// Arity is the required variable count, or ArityUnbounded.
	Arity     int                  `json:"arity"`
	SlotTypes []dataset.ColumnType `json:"slot_types"`

	// Group partitioning requirements. MaxGroups == 0 means no upper bound.
	NeedsGroup  bool `json:"needs_group"`
	MinGroups   int  `json:"min_groups,omitempty"`
	MaxGroups   int  `json:"max_groups,omitempty"`
	MinPerGroup int  `json:"min_per_group,omitempty"`

	// Overall sample bounds after missing-value exclusion. Zero means
	// unbounded on that side.
	MinN int `json:"min_n,omitempty"`
	MaxN int `json:"max_n,omitempty"`

	// Assumptions are documentation for the UI; only the structural
	// requirements above are enforced.
	Assumptions []string `json:"assumptions"`
}

// Selection is the caller's analysis request: which test, over which columns.
type Selection struct {
	TestID        TestID   `json:"test_id"`
	Variables     []string `json:"variables"`
	GroupVariable string   `json:"group_variable,omitempty"`
}

// Group is one partition of a grouped test's observations, in order of first
// appearance in the dataset.
type Group struct {
	Name   string
	Values []float64
}

// ResolvedSelection is a validated selection with the data already extracted:
// missing values excluded per the test's deletion policy, groups partitioned,
// and minimum sizes verified. Computation routines consume this and nothing
// else.
type ResolvedSelection struct {
	Spec      TestSpec
	Variables []string

	// Samples holds one aligned slice per numeric variable slot after
	// exclusion. Labels holds one aligned slice per categorical slot.
	Samples [][]float64
	Labels  [][]string

	// Groups is populated for group-partitioned tests.
	GroupVariable string
	Groups        []Group

	// N is the observation count entering the computation.
	N int
}
