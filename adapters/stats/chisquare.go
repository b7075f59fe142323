package stats

import (
	"math"

	"statease/domain/analysis"
	"statease/internal/errors"
)

// ChiSquareTest runs the test of independence over the contingency table
// built from two categorical variables. Row and column orders follow first
// appearance in the data, which keeps repeated runs byte-identical.
func ChiSquareTest(sel *analysis.ResolvedSelection) (analysis.TestResult, error) {
	rows, cols, table := contingencyTable(sel.Labels[0], sel.Labels[1])
	nRows, nCols := len(rows), len(cols)
	n := sel.N

	rowTotals := make([]float64, nRows)
	colTotals := make([]float64, nCols)
	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			rowTotals[i] += table[i][j]
			colTotals[j] += table[i][j]
		}
	}

	chi2 := 0.0
	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			expected := rowTotals[i] * colTotals[j] / float64(n)
			if expected == 0 {
				return nil, errors.NumericalError("contingency table has an expected count of zero")
			}
			d := table[i][j] - expected
			chi2 += d * d / expected
		}
	}

	df := (nRows - 1) * (nCols - 1)
	p := ChiSquarePValue(chi2, float64(df))

	minDim := nRows
	if nCols < minDim {
		minDim = nCols
	}
	v := math.Sqrt(chi2 / (float64(n) * float64(minDim-1)))

	return analysis.ChiSquareResult{
		Chi2:       chi2,
		PValue:     p,
		DF:         df,
		N:          n,
		EffectSize: CramersVEffect(v, minDim),
	}, nil
}

// contingencyTable cross-tabulates two label slices. Level order follows
// first appearance.
func contingencyTable(a, b []string) (rowLevels, colLevels []string, table [][]float64) {
	rowIdx := make(map[string]int)
	colIdx := make(map[string]int)
	for _, l := range a {
		if _, ok := rowIdx[l]; !ok {
			rowIdx[l] = len(rowLevels)
			rowLevels = append(rowLevels, l)
		}
	}
	for _, l := range b {
		if _, ok := colIdx[l]; !ok {
			colIdx[l] = len(colLevels)
			colLevels = append(colLevels, l)
		}
	}

	table = make([][]float64, len(rowLevels))
	for i := range table {
		table[i] = make([]float64, len(colLevels))
	}
	for i := range a {
		table[rowIdx[a[i]]][colIdx[b[i]]]++
	}
	return rowLevels, colLevels, table
}
