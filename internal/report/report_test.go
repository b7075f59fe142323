package report

import (
	"encoding/json"
	"strings"
	"testing"

	"statease/adapters/stats"
	"statease/domain/analysis"
	"statease/domain/dataset"
	"statease/internal/profiling"
)

func TestRenderHTML_FullDocument(t *testing.T) {
	ds := dataset.New([]dataset.Column{
		{Name: "score", Type: dataset.TypeNumeric, Numeric: []float64{10, 12, 9, 11, 10, 15, 14, 16, 15, 14}},
		{Name: "group", Type: dataset.TypeCategorical, Labels: []string{"A", "A", "A", "A", "A", "B", "B", "B", "B", "B"}},
	})
	ds.Profiles = map[string]dataset.ColumnProfile{}
	col, _ := ds.Column("score")
	ds.Profiles["score"] = profiling.Describe(col)

	result, err := stats.NewEngine().Run(ds, analysis.Selection{
		TestID:        analysis.TestIndependentT,
		Variables:     []string{"score"},
		GroupVariable: "group",
	})
	if err != nil {
		t.Fatalf("run analysis: %v", err)
	}

	out, err := RenderHTML(Request{
		Title:       "Experiment Results",
		DatasetName: "scores.csv",
		Dataset:     ds,
		Results:     []json.RawMessage{result},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	doc := string(out)
	for _, want := range []string{
		"<html>",
		"Experiment Results",
		"scores.csv",
		"Independent t-test",
		"t_statistic",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestRenderHTML_RejectsEnvelopeWithoutKind(t *testing.T) {
	_, err := RenderHTML(Request{
		Results: []json.RawMessage{json.RawMessage(`{"p_value": 0.01}`)},
	})
	if err == nil {
		t.Fatalf("expected missing-kind rejection")
	}
}

func TestRenderHTML_EmptyRequestStillRenders(t *testing.T) {
	out, err := RenderHTML(Request{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "Analysis Report") {
		t.Fatalf("expected default title in output")
	}
}
