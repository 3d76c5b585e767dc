// Package report renders the AI analysis table embedded in consolidated
// responses. The layout is fixed; only the analytics values vary.
package report

import (
	"html/template"
	"strings"

	"github.com/Ramsey-B/dahlia/pkg/models"
)

// fields defines the per-entry rows of the table, in render order. Each
// analytics entry contributes one row per field.
var fields = []struct {
	label string
	value func(models.CallAnalytics) *string
}{
	{"Past Call Outcome", func(c models.CallAnalytics) *string { return c.CallTypeValue }},
	{"Past Call Summary", func(c models.CallAnalytics) *string { return c.PastCallSummary }},
	{"Sentiment Analysis of the last call", func(c models.CallAnalytics) *string { return c.SentimentAnalysis }},
	{"Tone", func(c models.CallAnalytics) *string { return c.Tone }},
	{"Current Call Strategy", func(c models.CallAnalytics) *string { return c.CallStrategy }},
	{"AI Recommendations", func(c models.CallAnalytics) *string { return c.AIRecommendations }},
	{"Customer default history", func(c models.CallAnalytics) *string { return c.Negligence }},
}

const reportTemplate = `<h4 style='font-size: 16px; font-weight: bold; margin-bottom: 5px;'>AI analysis</h4>` +
	`<table style='border-collapse: collapse; margin-bottom: 50px; width: 100%;'>` +
	`<tr><th style='border: 1px solid pink; padding: 8px;'>Analysis type</th><th style='border: 1px solid pink; padding: 8px;'>AI outcome</th></tr>` +
	`{{range .Rows}}<tr><td style='border: 1px solid pink; padding: 8px; width: 30%;'>{{.Label}}</td><td style='border: 1px solid pink; padding: 8px;'>{{.Value}}</td></tr>{{end}}` +
	`</table>`

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

type row struct {
	Label string
	Value string
}

// Render produces the report table for the given analytics sequence, in input
// order. Analytics text is free-form AI output and is always escaped; an
// empty sequence renders a header-only table.
func Render(entries []models.CallAnalytics) (string, error) {
	rows := make([]row, 0, len(entries)*len(fields))
	for _, entry := range entries {
		for _, field := range fields {
			value := ""
			if v := field.value(entry); v != nil {
				value = *v
			}
			rows = append(rows, row{Label: field.label, Value: value})
		}
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, map[string]any{"Rows": rows}); err != nil {
		return "", err
	}

	return sb.String(), nil
}
