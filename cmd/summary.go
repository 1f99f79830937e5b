package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/productivity-log/internal/analytics"
	"github.com/Tiliavir/productivity-log/internal/model"
	"github.com/Tiliavir/productivity-log/internal/report"
	"github.com/Tiliavir/productivity-log/internal/timecalc"
	"github.com/Tiliavir/productivity-log/internal/tui"
)

var (
	summaryFilter filterFlags
	summaryFormat string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show time per day, mood per day and time per category",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryFilter.register(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "text", "Output format: text, csv, json")
}

func runSummary(cmd *cobra.Command, args []string) error {
	switch summaryFormat {
	case "text", "csv", "json":
	default:
		return fmt.Errorf("unknown --format %q (want text, csv or json)", summaryFormat)
	}
	set, err := selectEntries(summaryFilter)
	if err != nil {
		return err
	}
	s := report.Summarize(set)

	out := cmd.OutOrStdout()
	switch summaryFormat {
	case "csv":
		return report.SummaryCSV(out, s)
	case "json":
		return report.SummaryJSON(out, s)
	default:
		printSummary(out, set, s)
		return nil
	}
}

func printSummary(w io.Writer, set model.EntrySet, s report.Summary) {
	if set.Len() == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	days := analytics.SortedDates(s.DailyTime)
	timeBars := make([]tui.Bar, 0, len(days))
	moodBars := make([]tui.Bar, 0, len(days))
	for _, d := range days {
		timeBars = append(timeBars, tui.Bar{
			Label: d.String(),
			Value: float64(s.DailyTime[d]),
			Text:  timecalc.FormatMinutes(s.DailyTime[d]),
		})
		mood := report.RoundMood(s.DailyMood[d])
		moodBars = append(moodBars, tui.Bar{
			Label: d.String(),
			Value: mood,
			Text:  strconv.FormatFloat(mood, 'f', 2, 64),
		})
	}
	categories := analytics.SortedCategories(s.Categories)
	categoryBars := make([]tui.Bar, 0, len(categories))
	for _, c := range categories {
		categoryBars = append(categoryBars, tui.Bar{
			Label: c,
			Value: float64(s.Categories[c]),
			Text:  timecalc.FormatMinutes(s.Categories[c]),
		})
	}

	fmt.Fprintln(w, tui.Title("Time per day"))
	fmt.Fprint(w, tui.Bars(timeBars))
	fmt.Fprintln(w)
	fmt.Fprintln(w, tui.Title("Mood per day"))
	fmt.Fprint(w, tui.Bars(moodBars))
	fmt.Fprintln(w)
	fmt.Fprintln(w, tui.Title("Time per category"))
	fmt.Fprint(w, tui.Bars(categoryBars))
	fmt.Fprintln(w)
	fmt.Fprintln(w, overviewLine(set))
}
