package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Tiliavir/productivity-log/internal/model"
)

// Backend names accepted by Open.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Store persists the full EntrySet. Writes always replace the whole set;
// callers load, append in memory and save.
//
// No locking is done: two processes saving concurrently race and the last
// write wins.
type Store interface {
	// Init prepares the backing location (directories, tables). It is
	// idempotent and must be called once before Load or Save.
	Init() error
	// Load returns every stored entry in insertion order. A missing or
	// empty backing file yields an empty set.
	Load() (model.EntrySet, error)
	// Save replaces the stored set with set.
	Save(set model.EntrySet) error
	Close() error
}

// Options selects and locates a backend.
type Options struct {
	Backend    string
	DataFile   string
	SQLitePath string
}

// Open returns the Store described by opts. It does not touch the
// filesystem; call Init on the result.
func Open(opts Options, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch opts.Backend {
	case "", BackendCSV:
		if opts.DataFile == "" {
			return nil, fmt.Errorf("storage: data file path is empty")
		}
		return NewCSVStore(opts.DataFile, log), nil
	case BackendSQLite:
		if opts.SQLitePath == "" {
			return nil, fmt.Errorf("storage: sqlite path is empty")
		}
		return NewSQLiteStore(opts.SQLitePath, log), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q (want %q or %q)", opts.Backend, BackendCSV, BackendSQLite)
	}
}

// Append loads the current set, adds e and saves the result. It returns
// the saved set.
func Append(s Store, e model.Entry) (model.EntrySet, error) {
	set, err := s.Load()
	if err != nil {
		return nil, err
	}
	set = set.Append(e)
	if err := s.Save(set); err != nil {
		return nil, err
	}
	return set, nil
}

// ParseError reports backing data that does not match the entry schema.
type ParseError struct {
	Path string
	// Line is the 1-based line (or row) number; 0 when unknown.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed data in %s at line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("malformed data in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteError reports a failed save. The entry set is not persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("storage error writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ensureDir creates the directory containing path.
func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("writing temp file: %w", err)}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return &WriteError{Path: path, Err: fmt.Errorf("renaming temp file: %w", err)}
	}
	return nil
}

var (
	errZeroDate = errors.New("date is not set")
	errCRLF     = errors.New("CR LF line breaks cannot be stored in CSV")
)

// checkWritable reports an entry that would not read back unchanged.
// CSV readers fold CR LF inside a quoted field into LF, so csv rejects it.
func checkWritable(set model.EntrySet, csv bool) error {
	for i, e := range set {
		if e.Date.IsZero() {
			return fmt.Errorf("entry %d (%q): %w", i+1, e.Task, errZeroDate)
		}
		if csv && (strings.Contains(e.Task, "\r\n") || strings.Contains(e.Category, "\r\n")) {
			return fmt.Errorf("entry %d (%q): %w", i+1, e.Task, errCRLF)
		}
	}
	return nil
}
