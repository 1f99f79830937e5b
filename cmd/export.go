package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tiliavir/productivity-log/internal/model"
	"github.com/Tiliavir/productivity-log/internal/report"
)

var (
	exportFilter filterFlags
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries as a PDF report, CSV, JSON or Markdown",
	Long: `Export the selected entries. The PDF report is written to
~/.plog/productivity_report.pdf unless -o is given; the other formats go to
stdout unless -o is given.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportFilter.register(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "pdf", "Output format: pdf, csv, json, md")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file")
}

func runExport(cmd *cobra.Command, args []string) error {
	var render func(io.Writer, model.EntrySet) error
	switch exportFormat {
	case "pdf":
		title := cfg.Report.Title
		render = func(w io.Writer, set model.EntrySet) error { return report.PDF(w, set, title) }
	case "csv":
		render = report.CSV
	case "json":
		render = report.JSON
	case "md":
		render = report.Markdown
	default:
		return fmt.Errorf("unknown --format %q (want pdf, csv, json or md)", exportFormat)
	}

	set, err := selectEntries(exportFilter)
	if err != nil {
		return err
	}
	if set.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No data to export.")
		return nil
	}

	path := exportOutput
	if path == "" && exportFormat == "pdf" {
		path = filepath.Join(cfg.BaseDir, "productivity_report.pdf")
	}
	if path == "" {
		return render(cmd.OutOrStdout(), set)
	}
	if err := writeOutput(path, func(w io.Writer) error { return render(w, set) }); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", set.Len(), path)
	return nil
}

// writeOutput renders into memory and only then replaces path, so a
// failed or empty render leaves an existing file untouched.
func writeOutput(path string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Debug("output written", zap.String("path", path), zap.Int("bytes", buf.Len()))
	return nil
}
