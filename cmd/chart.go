package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/productivity-log/internal/analytics"
	"github.com/Tiliavir/productivity-log/internal/report"
)

var (
	chartFilter filterFlags
	chartOutput string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Draw time per category as a PNG bar chart",
	Args:  cobra.NoArgs,
	RunE:  runChart,
}

func init() {
	chartFilter.register(chartCmd)
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "Output file (default ~/.plog/category_chart.png)")
}

func runChart(cmd *cobra.Command, args []string) error {
	set, err := selectEntries(chartFilter)
	if err != nil {
		return err
	}
	totals := analytics.CategoryTimeTotals(set)

	path := chartOutput
	if path == "" {
		path = filepath.Join(cfg.BaseDir, "category_chart.png")
	}
	err = writeOutput(path, func(w io.Writer) error { return report.CategoryChart(w, totals) })
	if errors.Is(err, report.ErrNoData) {
		fmt.Fprintln(cmd.OutOrStdout(), "No data to chart.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Chart of %d categories written to %s\n", len(totals), path)
	return nil
}
