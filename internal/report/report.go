// Package report renders an analysis session into a standalone HTML
// document: dataset profile first, then one section per computed result with
// its interpretation. The document is assembled as markdown and converted
// in one pass.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"statease/domain/dataset"
	"statease/internal/errors"
)

// Request carries everything one report needs: the dataset it describes and
// the serialized result envelopes of the analyses run against it.
type Request struct {
	Title       string
	DatasetName string
	Dataset     *dataset.Dataset
	Results     []json.RawMessage
}

// RenderHTML produces the full HTML document.
func RenderHTML(req Request) ([]byte, error) {
	md, err := buildMarkdown(req)
	if err != nil {
		return nil, err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: req.Title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(md), p, renderer), nil
}

func buildMarkdown(req Request) (string, error) {
	var b strings.Builder
	title := req.Title
	if title == "" {
		title = "Analysis Report"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if req.Dataset != nil {
		fmt.Fprintf(&b, "## Dataset: %s\n\n", req.DatasetName)
		fmt.Fprintf(&b, "%d rows, %d columns.\n\n", req.Dataset.NumRows(), len(req.Dataset.ColumnNames()))
		writeProfileTable(&b, req.Dataset)
	}

	for i, raw := range req.Results {
		var fields map[string]interface{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return "", errors.Wrapf(err, "result %d is not a valid envelope", i+1)
		}
		kind, _ := fields["kind"].(string)
		if kind == "" {
			return "", errors.InvalidInput(fmt.Sprintf("result %d is missing its kind tag", i+1))
		}
		fmt.Fprintf(&b, "## %s\n\n", headline(kind))
		if text, ok := fields["interpretation"].(string); ok && text != "" {
			fmt.Fprintf(&b, "%s\n\n", text)
		}
		writeFieldTable(&b, fields)
	}
	return b.String(), nil
}

func writeProfileTable(b *strings.Builder, ds *dataset.Dataset) {
	if len(ds.Profiles) == 0 {
		return
	}
	b.WriteString("| Column | Count | Mean | Median | Std | Min | Max | Missing | Skewness |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for _, name := range ds.ColumnNames() {
		p, ok := ds.Profiles[name]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "| %s | %d | %.3f | %.3f | %.3f | %.3f | %.3f | %d | %.3f |\n",
			name, p.Count, p.Mean, p.Median, p.Std, p.Min, p.Max, p.Missing, p.Skewness)
	}
	b.WriteString("\n")
}

func writeFieldTable(b *strings.Builder, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "kind" || k == "interpretation" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("| Field | Value |\n|---|---|\n")
	for _, k := range keys {
		fmt.Fprintf(b, "| %s | %s |\n", k, formatValue(fields[k]))
	}
	b.WriteString("\n")
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "n/a"
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%.4f", t)
	case string:
		return t
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(raw)
	}
}

// headline maps a result kind tag to its section title.
func headline(kind string) string {
	titles := map[string]string{
		"independent_t_test":   "Independent t-test",
		"paired_t_test":        "Paired t-test",
		"one_way_anova":        "One-way ANOVA",
		"pearson_correlation":  "Pearson correlation",
		"spearman_correlation": "Spearman correlation",
		"chi_square_test":      "Chi-square test",
		"linear_regression":    "Linear regression",
		"mann_whitney_u":       "Mann-Whitney U test",
		"shapiro_wilk_test":    "Shapiro-Wilk test",
		"levene_test":          "Levene's test",
	}
	if t, ok := titles[kind]; ok {
		return t
	}
	return kind
}
