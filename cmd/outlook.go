package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tiliavir/productivity-log/internal/model"
	"github.com/Tiliavir/productivity-log/internal/msgraph"
	"github.com/Tiliavir/productivity-log/internal/timecalc"
)

var (
	outlookSyncFrom     string
	outlookSyncTo       string
	outlookSyncDate     string
	outlookSyncDryRun   bool
	outlookSyncCategory string
	outlookSyncMood     int
	outlookSyncTZ       string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import Outlook calendar events as entries",
	Long: `Import Outlook calendar events as entries. Cancelled, all-day, private
and free events are skipped, as are events already imported by an earlier
sync. Imported entries are never updated afterwards.`,
	Args: cobra.NoArgs,
	RunE: runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().StringVar(&outlookSyncFrom, "from", "", "Start date (YYYY-MM-DD); required when --to is specified")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTo, "to", "", "End date (YYYY-MM-DD); defaults to today")
	outlookSyncCmd.Flags().StringVar(&outlookSyncDate, "date", "", "Sync a specific date (YYYY-MM-DD); default today")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print planned imports without writing")
	outlookSyncCmd.Flags().StringVar(&outlookSyncCategory, "category", "", "Category for imported events (default from config)")
	outlookSyncCmd.Flags().IntVar(&outlookSyncMood, "mood", 0, "Mood for imported events (default from config)")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTZ, "timezone", "", "IANA timezone for event times (default from config)")
	outlookCmd.AddCommand(outlookSyncCmd)
}

// syncRange resolves the date flags to an inclusive range.
func syncRange(date, from, to string, today model.Date) (model.Date, model.Date, error) {
	switch {
	case date != "":
		if from != "" || to != "" {
			return today, today, fmt.Errorf("--date cannot be combined with --from or --to")
		}
		d, err := parseDateFlag("date", date)
		return d, d, err
	case to != "" && from == "":
		return today, today, fmt.Errorf("--from is required when --to is specified")
	case from != "":
		start, err := parseDateFlag("from", from)
		if err != nil {
			return start, start, err
		}
		end := today
		if to != "" {
			if end, err = parseDateFlag("to", to); err != nil {
				return start, end, err
			}
		}
		if end.Before(start) {
			return start, end, fmt.Errorf("--to %s is before --from %s", end, start)
		}
		return start, end, nil
	default:
		return today, today, nil
	}
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	from, to, err := syncRange(outlookSyncDate, outlookSyncFrom, outlookSyncTo, timecalc.Today(time.Now()))
	if err != nil {
		return err
	}

	opts := msgraph.ImportOptions{
		Category: cfg.Outlook.Category,
		Mood:     cfg.Outlook.Mood,
		Timezone: cfg.Outlook.Timezone,
		DryRun:   outlookSyncDryRun,
	}
	if outlookSyncCategory != "" {
		opts.Category = outlookSyncCategory
	}
	if cmd.Flags().Changed("mood") {
		opts.Mood = outlookSyncMood
	}
	if outlookSyncTZ != "" {
		opts.Timezone = outlookSyncTZ
	}
	if opts.Mood < model.MinMood || opts.Mood > model.MaxMood {
		return model.ErrMoodRange
	}

	ledger, err := msgraph.LoadLedger(msgraph.LedgerPath(cfg.BaseDir))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	dryTag := ""
	if opts.DryRun {
		dryTag = " [dry-run]"
	}
	fmt.Fprintf(out, "Syncing Outlook events (%s → %s)%s...\n\n", from, to, dryTag)

	ctx := cmd.Context()
	auth := msgraph.Auth{
		TenantID:  cfg.Outlook.TenantID,
		ClientID:  cfg.Outlook.ClientID,
		TokenPath: msgraph.TokenPath(cfg.BaseDir),
		Prompt:    out,
		Log:       log,
	}
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	events, err := msgraph.NewClient(httpClient, "").CalendarView(ctx, from, to, opts.Timezone)
	if err != nil {
		return fmt.Errorf("failed to fetch calendar events: %w", err)
	}
	log.Debug("calendar events fetched", zap.Int("count", len(events)))

	result, err := msgraph.Import(store, ledger, events, opts, out)
	if err != nil {
		return &storageFailure{err}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  %d imported\n", result.Imported)
	fmt.Fprintf(out, "  %d skipped\n", result.Skipped)
	if result.Errors > 0 {
		fmt.Fprintf(out, "  %d errors\n", result.Errors)
		return fmt.Errorf("%d events could not be imported", result.Errors)
	}
	return nil
}
