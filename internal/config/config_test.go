package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tiliavir/productivity-log/internal/config"
	"github.com/Tiliavir/productivity-log/internal/storage"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PLOG_HOME", "PLOG_BACKEND", "PLOG_DATA_FILE", "PLOG_SQLITE_PATH", "PLOG_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadFromWritesTemplate(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	path := config.FilePath(base)

	cfg, err := config.LoadFrom(base, path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Storage.Backend != storage.BackendCSV {
		t.Errorf("Backend = %q, want %q", cfg.Storage.Backend, storage.BackendCSV)
	}
	if want := filepath.Join(base, config.DefaultDataFile); cfg.Storage.DataFile != want {
		t.Errorf("DataFile = %q, want %q", cfg.Storage.DataFile, want)
	}
	if cfg.Defaults.Mood != config.DefaultMood || cfg.Defaults.Category != config.DefaultCategory {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("template not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "// plog configuration") {
		t.Errorf("unexpected template start: %q", string(data[:40]))
	}

	// The written template must load back to the same settings.
	again, err := config.LoadFrom(base, path)
	if err != nil {
		t.Fatalf("reloading template: %v", err)
	}
	if again.Storage != cfg.Storage || again.Outlook != cfg.Outlook || again.Log != cfg.Log {
		t.Errorf("template round trip = %+v, want %+v", again, cfg)
	}
}

func TestLoadFromPartialFile(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	path := config.FilePath(base)
	content := `// my settings
{
  // sqlite please
  "storage": {"backend": "sqlite", "sqlite_path": "/var/lib/plog.db"},
  "defaults": {"category": "Deep work"}
}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadFrom(base, path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Storage.Backend != storage.BackendSQLite {
		t.Errorf("Backend = %q", cfg.Storage.Backend)
	}
	if cfg.Storage.SQLitePath != "/var/lib/plog.db" {
		t.Errorf("SQLitePath = %q", cfg.Storage.SQLitePath)
	}
	if cfg.Defaults.Category != "Deep work" {
		t.Errorf("Category = %q", cfg.Defaults.Category)
	}
	if cfg.Defaults.Mood != config.DefaultMood {
		t.Errorf("Mood = %d, want default %d", cfg.Defaults.Mood, config.DefaultMood)
	}
	if cfg.Outlook.ClientID != config.DefaultClientID {
		t.Errorf("ClientID = %q, want default", cfg.Outlook.ClientID)
	}
	if cfg.BaseDir != base {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, base)
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	path := config.FilePath(base)
	if err := os.WriteFile(path, []byte("{ not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadFrom(base, path); err == nil {
		t.Fatal("expected an error for malformed config")
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	t.Setenv("PLOG_BACKEND", "sqlite")
	t.Setenv("PLOG_DATA_FILE", "other.csv")
	t.Setenv("PLOG_SQLITE_PATH", "/tmp/x.db")
	t.Setenv("PLOG_LOG_LEVEL", "debug")

	cfg, err := config.LoadFrom(base, config.FilePath(base))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Backend = %q", cfg.Storage.Backend)
	}
	if want := filepath.Join(base, "other.csv"); cfg.Storage.DataFile != want {
		t.Errorf("DataFile = %q, want %q", cfg.Storage.DataFile, want)
	}
	if cfg.Storage.SQLitePath != "/tmp/x.db" {
		t.Errorf("SQLitePath = %q", cfg.Storage.SQLitePath)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
}

func TestBaseDir(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("PLOG_HOME", dir)
	got, err := config.BaseDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("BaseDir = %q, want %q", got, dir)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PLOG_HOME", "")
	got, err = config.BaseDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".plog"); got != want {
		t.Errorf("BaseDir = %q, want %q", got, want)
	}
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := config.Config{BaseDir: "/data"}
	tests := []struct {
		in, want string
	}{
		{"tasks.csv", filepath.Join("/data", "tasks.csv")},
		{"/abs/tasks.csv", "/abs/tasks.csv"},
		{"~/tasks.csv", filepath.Join(home, "tasks.csv")},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := cfg.ResolvePath(tt.in)
		if err != nil {
			t.Fatalf("ResolvePath(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ResolvePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	good, err := config.LoadFrom(base, config.FilePath(base))
	if err != nil {
		t.Fatal(err)
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"backend", func(c *config.Config) { c.Storage.Backend = "xml" }, "storage.backend"},
		{"defaults mood", func(c *config.Config) { c.Defaults.Mood = 6 }, "defaults.mood"},
		{"outlook mood", func(c *config.Config) { c.Outlook.Mood = -1 }, "outlook.mood"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := good
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
