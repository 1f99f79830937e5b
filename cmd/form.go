package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/productivity-log/internal/analytics"
	"github.com/Tiliavir/productivity-log/internal/timecalc"
	"github.com/Tiliavir/productivity-log/internal/tui"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Log an activity with an interactive form",
	Args:  cobra.NoArgs,
	RunE:  runForm,
}

func runForm(cmd *cobra.Command, args []string) error {
	set, err := loadEntries()
	if err != nil {
		return err
	}
	entry, ok, err := tui.RunForm(tui.FormDefaults{
		Category:   cfg.Defaults.Category,
		Mood:       cfg.Defaults.Mood,
		Date:       timecalc.Today(time.Now()),
		Categories: analytics.DistinctCategories(set),
	})
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled, nothing was saved.")
		return nil
	}
	return appendEntry(cmd, entry)
}
