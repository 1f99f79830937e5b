package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tiliavir/productivity-log/internal/model"
	"github.com/Tiliavir/productivity-log/internal/storage"
	"github.com/Tiliavir/productivity-log/internal/timecalc"
)

var (
	addMinutes  int
	addMood     int
	addCategory string
	addDate     string
)

var addCmd = &cobra.Command{
	Use:   "add <task>",
	Short: "Log a finished activity",
	Example: `  plog add "Write report" --time 45 --mood 4 --category Work
  plog add Reading -t 30 -m 5 --date 2024-01-02`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().IntVarP(&addMinutes, "time", "t", 0, "Time spent in minutes (1-1440)")
	addCmd.Flags().IntVarP(&addMood, "mood", "m", 0, "Mood from 1 to 5 (default from config)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category (default from config)")
	addCmd.Flags().StringVar(&addDate, "date", "", "Date of the activity, YYYY-MM-DD (default today)")
	_ = addCmd.MarkFlagRequired("time")
}

func runAdd(cmd *cobra.Command, args []string) error {
	date := timecalc.Today(time.Now())
	if addDate != "" {
		d, err := parseDateFlag("date", addDate)
		if err != nil {
			return err
		}
		date = d
	}
	mood := addMood
	if !cmd.Flags().Changed("mood") {
		mood = cfg.Defaults.Mood
	}
	category := addCategory
	if category == "" {
		category = cfg.Defaults.Category
	}

	entry, err := model.NewEntry(date, strings.Join(args, " "), addMinutes, mood, category)
	if err != nil {
		return err
	}
	return appendEntry(cmd, entry)
}

// appendEntry persists entry and confirms it to the user.
func appendEntry(cmd *cobra.Command, entry model.Entry) error {
	set, err := storage.Append(store, entry)
	if err != nil {
		return &storageFailure{err}
	}
	log.Debug("entry appended", zap.String("task", entry.Task), zap.Int("entries", set.Len()))
	fmt.Fprintln(cmd.OutOrStdout(), "Entry added successfully!")
	fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s  %s  mood %d  [%s]\n",
		entry.Date, entry.Task, timecalc.FormatMinutes(entry.Minutes), entry.Mood, entry.Category)
	return nil
}
