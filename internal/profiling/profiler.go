// Package profiling turns a parsed upload into a typed dataset: it infers a
// type for every column, materializes the cells with explicit missing-value
// markers, and computes the descriptive statistics the analysis engine and
// the UI consume.
package profiling

import (
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"statease/adapters/tabular"
	"statease/domain/dataset"
)

// datetimeLayouts are tried in order during type inference.
var datetimeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

// BuildDataset infers column types from the raw cells, materializes typed
// columns, and attaches per-column profiles for the numeric ones.
func BuildDataset(table *tabular.Table) *dataset.Dataset {
	start := time.Now()
	columns := make([]dataset.Column, len(table.Headers))
	for i, name := range table.Headers {
		cells := make([]string, len(table.Rows))
		for r, row := range table.Rows {
			cells[r] = strings.TrimSpace(row[i])
		}
		columns[i] = buildColumn(name, cells)
	}

	ds := dataset.New(columns)
	ds.Profiles = make(map[string]dataset.ColumnProfile)
	for i := range columns {
		if columns[i].Type == dataset.TypeNumeric {
			ds.Profiles[columns[i].Name] = Describe(&columns[i])
		}
	}
	log.Printf("[Profiler] %d columns x %d rows profiled in %.2fms", len(columns), ds.NumRows(), float64(time.Since(start).Nanoseconds())/1e6)
	return ds
}

// buildColumn infers the column type from its non-empty cells. A column
// where every non-empty cell parses as a number is numeric; failing that,
// one where every non-empty cell parses as a date is datetime; everything
// else is categorical. An all-empty column defaults to categorical.
func buildColumn(name string, cells []string) dataset.Column {
	numeric, datetime := true, true
	nonEmpty := 0
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		nonEmpty++
		if numeric {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				numeric = false
			}
		}
		if datetime && !parsesAsDatetime(cell) {
			datetime = false
		}
	}

	switch {
	case nonEmpty > 0 && numeric:
		values := make([]float64, len(cells))
		for i, cell := range cells {
			if cell == "" {
				values[i] = math.NaN()
				continue
			}
			v, _ := strconv.ParseFloat(cell, 64)
			values[i] = v
		}
		return dataset.Column{Name: name, Type: dataset.TypeNumeric, Numeric: values}
	case nonEmpty > 0 && datetime:
		return dataset.Column{Name: name, Type: dataset.TypeDatetime, Labels: cells}
	default:
		return dataset.Column{Name: name, Type: dataset.TypeCategorical, Labels: cells}
	}
}

func parsesAsDatetime(cell string) bool {
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, cell); err == nil {
			return true
		}
	}
	return false
}

// Describe computes the descriptive profile of a numeric column over its
// non-missing values.
func Describe(col *dataset.Column) dataset.ColumnProfile {
	values := make([]float64, 0, len(col.Numeric))
	missing := 0
	for _, v := range col.Numeric {
		if math.IsNaN(v) {
			missing++
			continue
		}
		values = append(values, v)
	}

	profile := dataset.ColumnProfile{Count: len(values), Missing: missing}
	if len(values) == 0 {
		return profile
	}

	profile.Mean, _ = stats.Mean(values)
	profile.Median, _ = stats.Median(values)
	profile.Min, _ = stats.Min(values)
	profile.Max, _ = stats.Max(values)
	if len(values) > 1 {
		profile.Std, _ = stats.StandardDeviationSample(values)
	}
	profile.Skewness = skewness(values, profile.Mean, profile.Std)
	return profile
}

// skewness is the adjusted Fisher-Pearson coefficient, matching the usual
// spreadsheet and dataframe convention.
func skewness(values []float64, mean, std float64) float64 {
	n := float64(len(values))
	if n < 3 || std == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range values {
		d := (x - mean) / std
		sum += d * d * d
	}
	return n / ((n - 1) * (n - 2)) * sum
}
