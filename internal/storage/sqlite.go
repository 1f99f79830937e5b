package storage

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/Tiliavir/productivity-log/internal/model"
)

// sqliteSchema holds the single entries table. seq preserves insertion
// order across saves.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entries (
    seq          INTEGER PRIMARY KEY AUTOINCREMENT,
    date         TEXT    NOT NULL,
    task         TEXT    NOT NULL,
    time_minutes INTEGER NOT NULL,
    mood         INTEGER NOT NULL,
    category     TEXT    NOT NULL
);
`

// SQLiteStore keeps the entry set in a SQLite database file.
type SQLiteStore struct {
	path string
	db   *sql.DB
	log  *zap.Logger
}

// NewSQLiteStore returns a store backed by the database at path. The
// database is opened by Init.
func NewSQLiteStore(path string, log *zap.Logger) *SQLiteStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLiteStore{path: path, log: log.Named("storage").With(zap.String("path", path))}
}

// Init creates the database directory, opens the database and creates the
// entries table if needed.
func (s *SQLiteStore) Init() error {
	if s.db != nil {
		return nil
	}
	if err := ensureDir(s.path); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return fmt.Errorf("create entries table: %w", err)
	}

	s.db = db
	s.log.Debug("sqlite store ready")
	return nil
}

// Load returns all rows ordered by insertion.
func (s *SQLiteStore) Load() (model.EntrySet, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage: sqlite store not initialised")
	}

	rows, err := s.db.Query(`SELECT date, task, time_minutes, mood, category FROM entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}
	defer rows.Close()

	set := model.EntrySet{}
	row := 0
	for rows.Next() {
		row++
		var (
			date string
			e    model.Entry
		)
		if err := rows.Scan(&date, &e.Task, &e.Minutes, &e.Mood, &e.Category); err != nil {
			return nil, &ParseError{Path: s.path, Line: row, Err: err}
		}
		d, err := model.ParseDate(date)
		if err != nil {
			return nil, &ParseError{Path: s.path, Line: row, Err: &model.FieldError{Column: "Date", Value: date, Err: err}}
		}
		e.Date = d
		set = append(set, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}

	s.log.Debug("entries loaded", zap.Int("rows", len(set)))
	return set, nil
}

// Save replaces every row with set in a single transaction.
func (s *SQLiteStore) Save(set model.EntrySet) error {
	if s.db == nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("sqlite store not initialised")}
	}

	if err := checkWritable(set, false); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("begin transaction: %w", err)}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("clear entries: %w", err)}
	}
	stmt, err := tx.Prepare(`INSERT INTO entries (date, task, time_minutes, mood, category) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("prepare insert: %w", err)}
	}
	defer stmt.Close()

	for _, e := range set {
		if _, err := stmt.Exec(e.Date.String(), e.Task, e.Minutes, e.Mood, e.Category); err != nil {
			return &WriteError{Path: s.path, Err: fmt.Errorf("insert entry: %w", err)}
		}
	}
	if err := tx.Commit(); err != nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("commit: %w", err)}
	}

	s.log.Debug("entries saved", zap.Int("rows", len(set)))
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
