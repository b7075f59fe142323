// Package battery runs the Shapiro-Wilk normality screen across every
// numeric column of a dataset in one call. Columns are independent, so the
// checks run concurrently.
package battery

import (
	"context"

	"golang.org/x/sync/errgroup"

	"statease/adapters/stats"
	"statease/domain/analysis"
	"statease/domain/dataset"
	"statease/internal/errors"
)

// ColumnNormality is the screen outcome for one numeric column. Columns
// whose data cannot support the test carry the failure reason instead of a
// result.
type ColumnNormality struct {
	Column    string   `json:"column"`
	Statistic *float64 `json:"statistic,omitempty"`
	PValue    *float64 `json:"p_value,omitempty"`
	N         int      `json:"n,omitempty"`
	Normal    *bool    `json:"normal,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Run screens every numeric column, preserving dataset column order in the
// output. Per-column failures (too few observations, constant values) are
// reported inline; only context cancellation aborts the whole battery.
func Run(ctx context.Context, engine *stats.Engine, ds *dataset.Dataset) ([]ColumnNormality, error) {
	var targets []string
	for _, name := range ds.ColumnNames() {
		if col, _ := ds.Column(name); col.Type == dataset.TypeNumeric {
			targets = append(targets, name)
		}
	}

	results := make([]ColumnNormality, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range targets {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = screenColumn(engine, ds, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "normality battery interrupted")
	}
	return results, nil
}

func screenColumn(engine *stats.Engine, ds *dataset.Dataset, name string) ColumnNormality {
	out := ColumnNormality{Column: name}
	result, err := engine.Compute(ds, analysis.Selection{
		TestID:    analysis.TestShapiroWilk,
		Variables: []string{name},
	})
	if err != nil {
		out.Error = err.Error()
		return out
	}

	sw := result.(analysis.ShapiroWilkResult)
	w, p := sw.Statistic, sw.PValue
	normal := p > 0.05
	out.Statistic = &w
	out.PValue = &p
	out.N = sw.N
	out.Normal = &normal
	return out
}
