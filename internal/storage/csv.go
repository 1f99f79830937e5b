package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/Tiliavir/productivity-log/internal/model"
)

// CSVStore keeps the entry set in a single comma-separated file with a
// header row.
type CSVStore struct {
	path string
	log  *zap.Logger
}

// NewCSVStore returns a store backed by the file at path.
func NewCSVStore(path string, log *zap.Logger) *CSVStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &CSVStore{path: path, log: log.Named("storage").With(zap.String("path", path))}
}

// Path returns the backing file path.
func (s *CSVStore) Path() string { return s.path }

// Init creates the directory holding the backing file.
func (s *CSVStore) Init() error {
	return ensureDir(s.path)
}

// Load reads the backing file. A missing or zero-byte file is an empty set.
func (s *CSVStore) Load() (model.EntrySet, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.log.Debug("backing file absent, starting empty")
		return model.EntrySet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}
	if len(data) == 0 {
		s.log.Debug("backing file empty, starting empty")
		return model.EntrySet{}, nil
	}

	set, err := decodeCSV(bytes.NewReader(data))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = s.path
		}
		return nil, err
	}
	s.log.Debug("entries loaded", zap.Int("rows", len(set)))
	return set, nil
}

// Save overwrites the backing file with set.
func (s *CSVStore) Save(set model.EntrySet) error {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, set); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return err
	}
	s.log.Debug("entries saved", zap.Int("rows", len(set)))
	return nil
}

func (s *CSVStore) Close() error { return nil }

// EncodeCSV writes the header row followed by one row per entry. Entries
// without a date, or with CR LF in a text field, are refused before
// anything is written.
func EncodeCSV(w io.Writer, set model.EntrySet) error {
	if err := checkWritable(set, true); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(model.Headers()); err != nil {
		return err
	}
	for _, e := range set {
		if err := cw.Write(e.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func decodeCSV(r io.Reader) (model.EntrySet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, &ParseError{Line: 1, Err: fmt.Errorf("reading header: %w", err)}
	}
	// Strip a UTF-8 BOM left by spreadsheet editors.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	if !slices.Equal(header, model.Headers()) {
		return nil, &ParseError{Line: 1, Err: fmt.Errorf("unexpected columns %q, want %q", header, model.Headers())}
	}

	set := model.EntrySet{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var cpe *csv.ParseError
			if errors.As(err, &cpe) {
				line = cpe.Line
			}
			return nil, &ParseError{Line: line, Err: err}
		}
		line, _ := cr.FieldPos(0)
		e, err := model.ParseRecord(rec)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		set = append(set, e)
	}
	return set, nil
}
