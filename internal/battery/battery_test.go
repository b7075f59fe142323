package battery

import (
	"context"
	"testing"

	"statease/adapters/stats"
	"statease/domain/dataset"
)

func TestRun_ScreensNumericColumnsInOrder(t *testing.T) {
	ds := dataset.New([]dataset.Column{
		{Name: "a", Type: dataset.TypeNumeric, Numeric: []float64{4.2, 5.1, 3.8, 5.5, 4.9, 4.4, 5.0, 4.7, 5.3, 4.1}},
		{Name: "label", Type: dataset.TypeCategorical, Labels: []string{"x", "x", "y", "y", "x", "y", "x", "y", "x", "y"}},
		{Name: "b", Type: dataset.TypeNumeric, Numeric: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	})

	results, err := Run(context.Background(), stats.NewEngine(), ds)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 numeric columns screened, got %d", len(results))
	}
	if results[0].Column != "a" || results[1].Column != "b" {
		t.Fatalf("expected dataset order [a b], got [%s %s]", results[0].Column, results[1].Column)
	}
	for _, r := range results {
		if r.Error != "" {
			t.Fatalf("column %s unexpectedly failed: %s", r.Column, r.Error)
		}
		if r.Statistic == nil || r.PValue == nil || r.Normal == nil {
			t.Fatalf("column %s missing result fields: %+v", r.Column, r)
		}
		if *r.PValue < 0 || *r.PValue > 1 {
			t.Fatalf("column %s p-value out of range: %v", r.Column, *r.PValue)
		}
	}
}

func TestRun_ReportsPerColumnFailuresInline(t *testing.T) {
	ds := dataset.New([]dataset.Column{
		{Name: "constant", Type: dataset.TypeNumeric, Numeric: []float64{7, 7, 7, 7, 7}},
		{Name: "ok", Type: dataset.TypeNumeric, Numeric: []float64{1, 2, 3, 4, 6}},
	})

	results, err := Run(context.Background(), stats.NewEngine(), ds)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results[0].Error == "" {
		t.Fatalf("constant column should carry an inline error")
	}
	if results[1].Error != "" {
		t.Fatalf("healthy column should succeed, got %s", results[1].Error)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds := dataset.New([]dataset.Column{
		{Name: "a", Type: dataset.TypeNumeric, Numeric: []float64{1, 2, 3, 4, 5}},
	})
	if _, err := Run(ctx, stats.NewEngine(), ds); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
