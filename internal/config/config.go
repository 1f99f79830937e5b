package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/Tiliavir/productivity-log/internal/storage"
)

// Config is the root configuration for plog, stored in ~/.plog/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Storage  StorageConfig  `json:"storage"`
	Defaults DefaultsConfig `json:"defaults"`
	Report   ReportConfig   `json:"report"`
	Outlook  OutlookConfig  `json:"outlook"`
	Log      LogConfig      `json:"log"`

	// BaseDir is the resolved data directory; it is not read from the file.
	BaseDir string `json:"-"`
}

// StorageConfig selects the entry store backend and its location.
// Relative paths are resolved against the data directory.
type StorageConfig struct {
	Backend    string `json:"backend"`
	DataFile   string `json:"data_file"`
	SQLitePath string `json:"sqlite_path"`
}

// DefaultsConfig pre-fills new entries.
type DefaultsConfig struct {
	Category string `json:"category"`
	Mood     int    `json:"mood"`
}

// ReportConfig holds export settings.
type ReportConfig struct {
	Title string `json:"title"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar import settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id"`
	// Category is assigned to imported events.
	Category string `json:"category"`
	// Mood is assigned to imported events.
	Mood int `json:"mood"`
	// Timezone is the IANA timezone for event times (e.g. "Europe/Berlin"). Empty = UTC.
	Timezone string `json:"timezone"`
}

// LogConfig sets the diagnostic log level (debug, info, warn, error).
type LogConfig struct {
	Level string `json:"level"`
}

const (
	DefaultBackend    = storage.BackendCSV
	DefaultDataFile   = "tasks.csv"
	DefaultSQLitePath = "tasks.db"
	DefaultCategory   = "General"
	DefaultMood       = 3
	DefaultTitle      = "Personal Productivity Report"
	DefaultLogLevel   = "warn"

	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID.
	// It supports device code flow without a client secret and requires no
	// app registration.
	DefaultClientID        = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	DefaultOutlookCategory = "Meetings"

	// EnvPrefix prefixes every environment override, e.g. PLOG_DATA_FILE.
	EnvPrefix = "plog"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend:    DefaultBackend,
			DataFile:   DefaultDataFile,
			SQLitePath: DefaultSQLitePath,
		},
		Defaults: DefaultsConfig{Category: DefaultCategory, Mood: DefaultMood},
		Report:   ReportConfig{Title: DefaultTitle},
		Outlook: OutlookConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
			Category: DefaultOutlookCategory,
			Mood:     DefaultMood,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// plog configuration – ~/.plog/config.json
//
// All settings are optional; the built-in defaults shown below work out of
// the box. Every value can also be overridden from the environment
// (PLOG_BACKEND, PLOG_DATA_FILE, PLOG_SQLITE_PATH, PLOG_LOG_LEVEL) or with
// command-line flags.
{
  // ── Entry storage ────────────────────────────────────────────────────────
  "storage": {
    // "csv" keeps entries in a plain CSV file, "sqlite" in a database file.
    "backend": "csv",

    // Relative paths are resolved against this directory.
    "data_file": "tasks.csv",
    "sqlite_path": "tasks.db"
  },

  // ── Defaults for new entries ─────────────────────────────────────────────
  "defaults": {
    "category": "General",
    "mood": 3
  },

  // ── Exports ──────────────────────────────────────────────────────────────
  "report": {
    "title": "Personal Productivity Report"
  },

  // ── Microsoft Graph / Outlook calendar import ────────────────────────────
  "outlook": {
    // Azure AD tenant ID.
    // • "common"  – personal Microsoft accounts and any organisation (default)
    // • Your organisation's tenant GUID
    "tenant_id": "common",

    // Azure application (client) ID used for the OAuth2 device code flow.
    // The built-in value is the public Azure CLI app – no app registration needed.
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab",

    // Category and mood assigned to imported calendar events.
    "category": "Meetings",
    "mood": 3,

    // IANA timezone for interpreting calendar event times, e.g. "Europe/Berlin".
    // Leave empty to use UTC.
    "timezone": ""
  },

  // ── Diagnostics ──────────────────────────────────────────────────────────
  "log": {
    // debug, info, warn or error. --verbose forces debug.
    "level": "warn"
  }
}
`

// envOverrides are read from PLOG_* variables. Tagged names also fall back
// to the unprefixed variable, so common names like HOME stay untagged.
type envOverrides struct {
	Home       string
	Backend    string
	DataFile   string `split_words:"true"`
	SQLitePath string `envconfig:"SQLITE_PATH"`
	LogLevel   string `split_words:"true"`
}

// BaseDir returns the root data directory: $PLOG_HOME, or ~/.plog.
func BaseDir() (string, error) {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return "", fmt.Errorf("reading environment: %w", err)
	}
	if env.Home != "" {
		return expandHome(env.Home)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".plog"), nil
}

// FilePath returns the path to config.json inside base.
func FilePath(base string) string {
	return filepath.Join(base, "config.json")
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// LoadFrom reads the config file at path, creating it with annotated
// defaults on first run, then applies PLOG_* environment overrides and
// resolves storage paths against base.
func LoadFrom(base, path string) (Config, error) {
	cfg := defaultConfig()
	cfg.BaseDir = base

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		var fromFile Config
		if err := json.Unmarshal(stripLineComments(data), &fromFile); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
		fromFile.BaseDir = base
		cfg = fromFile
		fillDefaults(&cfg)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.resolvePaths(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// fillDefaults fills zero-value fields with built-in defaults so callers
// always get a usable Config even if the user only partially fills in the file.
func fillDefaults(cfg *Config) {
	def := defaultConfig()
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = def.Storage.Backend
	}
	if cfg.Storage.DataFile == "" {
		cfg.Storage.DataFile = def.Storage.DataFile
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = def.Storage.SQLitePath
	}
	if cfg.Defaults.Category == "" {
		cfg.Defaults.Category = def.Defaults.Category
	}
	if cfg.Defaults.Mood == 0 {
		cfg.Defaults.Mood = def.Defaults.Mood
	}
	if cfg.Report.Title == "" {
		cfg.Report.Title = def.Report.Title
	}
	if cfg.Outlook.TenantID == "" {
		cfg.Outlook.TenantID = def.Outlook.TenantID
	}
	if cfg.Outlook.ClientID == "" {
		cfg.Outlook.ClientID = def.Outlook.ClientID
	}
	if cfg.Outlook.Category == "" {
		cfg.Outlook.Category = def.Outlook.Category
	}
	if cfg.Outlook.Mood == 0 {
		cfg.Outlook.Mood = def.Outlook.Mood
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if env.Backend != "" {
		cfg.Storage.Backend = env.Backend
	}
	if env.DataFile != "" {
		cfg.Storage.DataFile = env.DataFile
	}
	if env.SQLitePath != "" {
		cfg.Storage.SQLitePath = env.SQLitePath
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	return nil
}

func (c *Config) resolvePaths() error {
	for _, p := range []*string{&c.Storage.DataFile, &c.Storage.SQLitePath} {
		resolved, err := c.ResolvePath(*p)
		if err != nil {
			return err
		}
		*p = resolved
	}
	return nil
}

// ResolvePath expands ~/ and makes a relative path absolute under BaseDir.
func (c Config) ResolvePath(p string) (string, error) {
	p, err := expandHome(p)
	if err != nil {
		return "", err
	}
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	return filepath.Join(c.BaseDir, p), nil
}

// StorageOptions returns the options for storage.Open.
func (c Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:    c.Storage.Backend,
		DataFile:   c.Storage.DataFile,
		SQLitePath: c.Storage.SQLitePath,
	}
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	var problems []string
	switch c.Storage.Backend {
	case storage.BackendCSV, storage.BackendSQLite:
	default:
		problems = append(problems, fmt.Sprintf("storage.backend %q must be %q or %q", c.Storage.Backend, storage.BackendCSV, storage.BackendSQLite))
	}
	if c.Defaults.Mood < 1 || c.Defaults.Mood > 5 {
		problems = append(problems, fmt.Sprintf("defaults.mood %d must be between 1 and 5", c.Defaults.Mood))
	}
	if c.Outlook.Mood < 1 || c.Outlook.Mood > 5 {
		problems = append(problems, fmt.Sprintf("outlook.mood %d must be between 1 and 5", c.Outlook.Mood))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func expandHome(p string) (string, error) {
	if !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory to expand %q: %w", p, err)
	}
	return filepath.Join(home, p[2:]), nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
