package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the semantic type of a column.
type Kind int

const (
	KindDate Kind = iota
	KindText
	KindInt
)

// Column describes one field of the persisted and reported entry layout.
// Header is the name written to the backing file, Label the name shown in
// rendered reports.
type Column struct {
	Header string
	Label  string
	Kind   Kind
}

// Columns is the single ordered schema shared by every store and renderer.
var Columns = []Column{
	{Header: "Date", Label: "Date", Kind: KindDate},
	{Header: "Task", Label: "Task", Kind: KindText},
	{Header: "Time (min)", Label: "Time (min)", Kind: KindInt},
	{Header: "Mood (1-5)", Label: "Mood", Kind: KindInt},
	{Header: "Category", Label: "Category", Kind: KindText},
}

// Headers returns the backing-file header row.
func Headers() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Header
	}
	return out
}

// Labels returns the report header row.
func Labels() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Label
	}
	return out
}

// Record returns e as one row in Columns order.
func (e Entry) Record() []string {
	return []string{
		e.Date.String(),
		e.Task,
		strconv.Itoa(e.Minutes),
		strconv.Itoa(e.Mood),
		e.Category,
	}
}

// FieldError reports a single field that could not be parsed.
type FieldError struct {
	Column string
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("column %q: cannot parse %q: %v", e.Column, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ParseRecord parses one row in Columns order. Values are type-coerced only;
// ranges are not checked.
func ParseRecord(rec []string) (Entry, error) {
	if len(rec) != len(Columns) {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", len(Columns), len(rec))
	}

	date, err := ParseDate(strings.TrimSpace(rec[0]))
	if err != nil {
		return Entry{}, &FieldError{Column: Columns[0].Header, Value: rec[0], Err: err}
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(rec[2]))
	if err != nil {
		return Entry{}, &FieldError{Column: Columns[2].Header, Value: rec[2], Err: err}
	}
	mood, err := strconv.Atoi(strings.TrimSpace(rec[3]))
	if err != nil {
		return Entry{}, &FieldError{Column: Columns[3].Header, Value: rec[3], Err: err}
	}

	return Entry{
		Date:     date,
		Task:     rec[1],
		Minutes:  minutes,
		Mood:     mood,
		Category: rec[4],
	}, nil
}
