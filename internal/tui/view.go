package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Tiliavir/productivity-log/internal/model"
)

// EntriesTable renders set in the given order as a bordered table.
func EntriesTable(set model.EntrySet) string {
	rows := make([][]string, 0, len(set))
	for _, e := range set {
		rows = append(rows, e.Record())
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(model.Labels()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			if model.Columns[col].Kind == model.KindInt {
				return numberStyle
			}
			return cellStyle
		})
	return t.String()
}

// Bar is one row of a horizontal bar chart. Text is printed after the bar;
// an empty Text prints Value.
type Bar struct {
	Label string
	Value float64
	Text  string
}

// Bars renders a horizontal bar chart scaled to the largest value.
// Negative values draw no bar.
func Bars(bars []Bar) string {
	if len(bars) == 0 {
		return ""
	}
	labelWidth, top := 0, 0.0
	for _, b := range bars {
		if w := lipgloss.Width(b.Label); w > labelWidth {
			labelWidth = w
		}
		if b.Value > top {
			top = b.Value
		}
	}

	var sb strings.Builder
	for _, b := range bars {
		n := 0
		if top > 0 && b.Value > 0 {
			n = int(math.Round(b.Value / top * barWidth))
			if n == 0 {
				n = 1
			}
		}
		text := b.Text
		if text == "" {
			text = fmt.Sprintf("%g", b.Value)
		}
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(b.Label))
		fmt.Fprintf(&sb, "%s%s  %s %s\n", b.Label, pad, barStyle.Render(strings.Repeat(barRune, n)), text)
	}
	return sb.String()
}
