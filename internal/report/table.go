// Package report renders entry sets and their summaries as documents:
// CSV, JSON and Markdown tables, a PDF report and a category bar chart.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Tiliavir/productivity-log/internal/analytics"
	"github.com/Tiliavir/productivity-log/internal/model"
	"github.com/Tiliavir/productivity-log/internal/storage"
)

// DefaultTitle heads the PDF report.
const DefaultTitle = "Personal Productivity Report"

// CSV writes set in the backing-file layout.
func CSV(w io.Writer, set model.EntrySet) error {
	return storage.EncodeCSV(w, set)
}

// JSON writes set as an indented JSON array.
func JSON(w io.Writer, set model.EntrySet) error {
	if set == nil {
		set = model.EntrySet{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(set)
}

// Markdown writes set as a Markdown table using the report labels.
func Markdown(w io.Writer, set model.EntrySet) error {
	var b strings.Builder
	labels := model.Labels()
	b.WriteString("| " + strings.Join(labels, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(labels)) + "\n")
	for _, e := range set {
		rec := e.Record()
		for i := range rec {
			rec[i] = mdEscape(rec[i])
		}
		b.WriteString("| " + strings.Join(rec, " | ") + " |\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// mdEscape keeps a cell on one line and its pipes literal.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", " ")
}

// Summary bundles the three aggregates of one set.
type Summary struct {
	DailyTime  map[model.Date]int
	DailyMood  map[model.Date]float64
	Categories map[string]int
	Overview   analytics.Overview
}

// Summarize computes every aggregate of set.
func Summarize(set model.EntrySet) Summary {
	return Summary{
		DailyTime:  analytics.DailyTimeTotals(set),
		DailyMood:  analytics.DailyMoodAverage(set),
		Categories: analytics.CategoryTimeTotals(set),
		Overview:   analytics.Totals(set),
	}
}

// RoundMood rounds a mood average to two decimals for display.
func RoundMood(v float64) float64 {
	return math.Round(v*100) / 100
}

type dayJSON struct {
	Date     string  `json:"date"`
	Minutes  int     `json:"time_minutes"`
	MeanMood float64 `json:"mean_mood"`
}

type categoryJSON struct {
	Category string `json:"category"`
	Minutes  int    `json:"time_minutes"`
}

type summaryJSON struct {
	Days       []dayJSON          `json:"days"`
	Categories []categoryJSON     `json:"categories"`
	Overview   analytics.Overview `json:"overview"`
}

// SummaryJSON writes s with days ascending and categories largest first.
func SummaryJSON(w io.Writer, s Summary) error {
	out := summaryJSON{Days: []dayJSON{}, Categories: []categoryJSON{}, Overview: s.Overview}
	out.Overview.MeanMood = RoundMood(out.Overview.MeanMood)
	for _, d := range analytics.SortedDates(s.DailyTime) {
		out.Days = append(out.Days, dayJSON{
			Date:     d.String(),
			Minutes:  s.DailyTime[d],
			MeanMood: RoundMood(s.DailyMood[d]),
		})
	}
	for _, c := range analytics.SortedCategories(s.Categories) {
		out.Categories = append(out.Categories, categoryJSON{Category: c, Minutes: s.Categories[c]})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// SummaryCSV writes s as two CSV sections separated by a blank line:
// per-day rows then per-category rows.
func SummaryCSV(w io.Writer, s Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Time (min)", "Mean mood"}); err != nil {
		return err
	}
	for _, d := range analytics.SortedDates(s.DailyTime) {
		mood := strconv.FormatFloat(RoundMood(s.DailyMood[d]), 'f', 2, 64)
		if err := cw.Write([]string{d.String(), strconv.Itoa(s.DailyTime[d]), mood}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := cw.Write([]string{"Category", "Time (min)"}); err != nil {
		return err
	}
	for _, c := range analytics.SortedCategories(s.Categories) {
		if err := cw.Write([]string{c, strconv.Itoa(s.Categories[c])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
