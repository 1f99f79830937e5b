package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/productivity-log/internal/analytics"
	"github.com/Tiliavir/productivity-log/internal/model"
	"github.com/Tiliavir/productivity-log/internal/report"
	"github.com/Tiliavir/productivity-log/internal/timecalc"
	"github.com/Tiliavir/productivity-log/internal/tui"
)

var listFilter filterFlags

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listFilter.register(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	set, err := selectEntries(listFilter)
	if err != nil {
		return err
	}
	printList(cmd.OutOrStdout(), set)
	return nil
}

func printList(w io.Writer, set model.EntrySet) {
	if set.Len() == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}
	fmt.Fprintln(w, tui.EntriesTable(set.SortedByDate(false)))
	fmt.Fprintln(w, overviewLine(set))
}

// overviewLine is the one-line footer under lists and summaries.
func overviewLine(set model.EntrySet) string {
	o := analytics.Totals(set)
	line := fmt.Sprintf("%d entries, %s total, mean mood %.2f", o.Entries, timecalc.FormatMinutes(o.Minutes), report.RoundMood(o.MeanMood))
	if first, last, ok := analytics.Bounds(set); ok {
		line += fmt.Sprintf(", %s to %s (%d days)", first, last, timecalc.DaysBetween(first, last)+1)
	}
	return tui.Muted(line)
}
