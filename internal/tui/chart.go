package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
)

// seriesPoint is one chartable sample from a stripped payload.
type seriesPoint struct {
	Label string
	Value float64
}

// extractSeries pulls a ["series"] list of {label, value} rows from a
// stripped payload. Payloads without a numeric series render as YAML
// instead.
func extractSeries(stripped any) ([]seriesPoint, bool) {
	root, ok := stripped.(map[string]any)
	if !ok {
		return nil, false
	}
	rows, ok := root["series"].([]any)
	if !ok {
		return nil, false
	}

	points := make([]seriesPoint, 0, len(rows))
	for _, row := range rows {
		node, ok := row.(map[string]any)
		if !ok {
			return nil, false
		}
		value, ok := asFloat(node["value"])
		if !ok {
			return nil, false
		}
		label, _ := node["label"].(string)
		points = append(points, seriesPoint{Label: label, Value: value})
	}
	return points, true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// renderSeriesChart draws the series as a bar chart with a legend line
// per bar.
func renderSeriesChart(points []seriesPoint, width int) string {
	if width < 20 {
		width = 20
	}

	bc := barchart.New(width, 8,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(3),
		barchart.WithNoAxis(),
	)
	for _, p := range points {
		bc.Push(barchart.BarData{
			Label: truncate(p.Label, 6),
			Values: []barchart.BarValue{
				{Name: p.Label, Value: p.Value, Style: barStyle},
			},
		})
	}
	bc.Draw()

	legend := make([]string, len(points))
	for i, p := range points {
		legend[i] = fmt.Sprintf("%s: %.0f", p.Label, p.Value)
	}
	return bc.View() + "\n" + helpStyle.Render(strings.Join(legend, "  "))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
