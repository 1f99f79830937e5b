package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tiliavir/productivity-log/internal/config"
	"github.com/Tiliavir/productivity-log/internal/logger"
	"github.com/Tiliavir/productivity-log/internal/model"
	"github.com/Tiliavir/productivity-log/internal/storage"
)

var (
	configPath  string
	dataFile    string
	backendName string
	verbose     bool
)

// Set up by the root command before any subcommand runs.
var (
	cfg   config.Config
	store storage.Store
	log   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "plog",
	Short: "plog – a personal productivity log",
	Long: `plog records what you worked on, for how long and how it felt, then
summarises time per day, mood per day and time per category.
Entries live in a CSV file (or SQLite database) under ~/.plog/.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute is the entry point called from main.
func Execute() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if store != nil {
			_ = store.Close()
		}
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.plog/config.json)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data-file", "", "CSV data file, overrides storage.data_file")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "Storage backend: csv or sqlite")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(outlookCmd)
}

// setup loads the configuration, applies flag overrides and opens the store.
func setup(cmd *cobra.Command, args []string) error {
	base, err := config.BaseDir()
	if err != nil {
		return err
	}
	path := configPath
	if path == "" {
		path = config.FilePath(base)
	}
	if cfg, err = config.LoadFrom(base, path); err != nil {
		return err
	}
	if dataFile != "" {
		if cfg.Storage.DataFile, err = filepath.Abs(dataFile); err != nil {
			return err
		}
	}
	if backendName != "" {
		cfg.Storage.Backend = backendName
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if log, err = logger.New(cfg.Log.Level, verbose); err != nil {
		return err
	}
	log.Debug("configuration loaded",
		zap.String("base", cfg.BaseDir),
		zap.String("backend", cfg.Storage.Backend),
		zap.String("data_file", cfg.Storage.DataFile),
	)

	if store, err = storage.Open(cfg.StorageOptions(), log); err != nil {
		return err
	}
	if err := store.Init(); err != nil {
		return &storageFailure{err}
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	_ = log.Sync()
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// storageFailure marks errors from the backing store that carry no type of
// their own, such as a data directory that cannot be created.
type storageFailure struct{ err error }

func (e *storageFailure) Error() string { return e.err.Error() }
func (e *storageFailure) Unwrap() error { return e.err }

// exitCode maps storage problems to 2 and everything else to 1.
func exitCode(err error) int {
	var (
		parseErr *storage.ParseError
		writeErr *storage.WriteError
		failure  *storageFailure
	)
	if errors.As(err, &parseErr) || errors.As(err, &writeErr) || errors.As(err, &failure) {
		return 2
	}
	return 1
}

// loadEntries reads the whole store, marking failures as storage errors.
func loadEntries() (model.EntrySet, error) {
	set, err := store.Load()
	if err != nil {
		return nil, &storageFailure{err}
	}
	log.Debug("entries loaded", zap.Int("count", set.Len()))
	return set, nil
}
