package report

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Tiliavir/productivity-log/internal/analytics"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

var barColor = drawing.ColorFromHex("87ceeb") // skyblue

// CategoryChart writes a PNG bar chart of minutes per category, largest
// category first.
func CategoryChart(w io.Writer, totals map[string]int) error {
	names := analytics.SortedCategories(totals)
	if len(names) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, len(names))
	max := 0
	for _, name := range names {
		bars = append(bars, chart.Value{
			Label: name,
			Value: float64(totals[name]),
			Style: chart.Style{
				FillColor:   barColor,
				StrokeColor: barColor,
				StrokeWidth: 1,
			},
		})
		if totals[name] > max {
			max = totals[name]
		}
	}
	if max <= 0 {
		return ErrNoData
	}

	graph := chart.BarChart{
		Title:    "Time Spent by Category",
		Width:    160 + 90*len(bars),
		Height:   480,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Name: "Time (min)",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(max) * 1.1,
			},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering category chart: %w", err)
	}
	return nil
}
