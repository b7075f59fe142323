package dataset

import "math"

// ColumnType is the declared type of a dataset column, assigned by the
// profiler before any analysis runs.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeDatetime    ColumnType = "datetime"
)

// Column holds one column of a materialized dataset. Numeric columns store
// values with NaN marking missing cells; categorical and datetime columns
// store labels with "" marking missing cells. Exactly one of the two slices
// is populated, and its length equals the dataset row count.
type Column struct {
	Name    string
	Type    ColumnType
	Numeric []float64
	Labels  []string
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	if c.Type == TypeNumeric {
		return len(c.Numeric)
	}
	return len(c.Labels)
}

// Missing reports whether the cell at row i is missing.
func (c *Column) Missing(i int) bool {
	if c.Type == TypeNumeric {
		return math.IsNaN(c.Numeric[i])
	}
	return c.Labels[i] == ""
}

// DistinctCount returns the number of distinct non-missing values.
func (c *Column) DistinctCount() int {
	if c.Type == TypeNumeric {
		seen := make(map[float64]struct{})
		for _, v := range c.Numeric {
			if !math.IsNaN(v) {
				seen[v] = struct{}{}
			}
		}
		return len(seen)
	}
	seen := make(map[string]struct{})
	for _, v := range c.Labels {
		if v != "" {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

// ColumnProfile carries the descriptive statistics the profiler computes for
// a numeric column. The analysis engine consumes these as-is and never
// recomputes them.
type ColumnProfile struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Missing  int     `json:"missing"`
	Skewness float64 `json:"skewness"`
}

// Dataset is an immutable, fully materialized table: ordered columns, a
// declared type per column, and profiler output for the numeric columns.
// All rows are in memory; there is no streaming access.
type Dataset struct {
	columns []Column
	byName  map[string]int
	nRows   int

	Profiles map[string]ColumnProfile
}

// New builds a dataset from ordered columns. All columns must have the same
// length; the first column's length defines the row count.
func New(columns []Column) *Dataset {
	ds := &Dataset{
		columns: columns,
		byName:  make(map[string]int, len(columns)),
	}
	for i := range columns {
		ds.byName[columns[i].Name] = i
	}
	if len(columns) > 0 {
		ds.nRows = columns[0].Len()
	}
	return ds
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int { return d.nRows }

// ColumnNames returns column names in declaration order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i := range d.columns {
		names[i] = d.columns[i].Name
	}
	return names
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, false
	}
	return &d.columns[i], true
}

// Types returns the column name to declared type map.
func (d *Dataset) Types() map[string]ColumnType {
	types := make(map[string]ColumnType, len(d.columns))
	for i := range d.columns {
		types[d.columns[i].Name] = d.columns[i].Type
	}
	return types
}
