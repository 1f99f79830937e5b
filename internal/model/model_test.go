package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Tiliavir/productivity-log/internal/model"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    model.Date
		wantErr bool
	}{
		{"2024-01-01", model.Date{Year: 2024, Month: time.January, Day: 1}, false},
		{"2026-02-28", model.Date{Year: 2026, Month: time.February, Day: 28}, false},
		{"2024-13-01", model.Date{}, true},
		{"01/02/2024", model.Date{}, true},
		{"", model.Date{}, true},
	}
	for _, tt := range tests {
		got, err := model.ParseDate(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDateStringRoundTrip(t *testing.T) {
	d := model.Date{Year: 2024, Month: time.March, Day: 9}
	if d.String() != "2024-03-09" {
		t.Errorf("String = %q, want %q", d.String(), "2024-03-09")
	}
	back, err := model.ParseDate(d.String())
	if err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestDateOrdering(t *testing.T) {
	a := model.Date{Year: 2024, Month: time.January, Day: 31}
	b := model.Date{Year: 2024, Month: time.February, Day: 1}
	if !a.Before(b) || a.After(b) {
		t.Error("expected a before b")
	}
	if a.Before(a) || a.After(a) {
		t.Error("a date is neither before nor after itself")
	}
	if got := a.AddDays(1); got != b {
		t.Errorf("AddDays(1) = %v, want %v", got, b)
	}
}

func TestDateJSON(t *testing.T) {
	e := model.Entry{Date: model.Date{Year: 2024, Month: time.January, Day: 2}, Task: "A", Minutes: 5, Mood: 3, Category: "Work"}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"date":"2024-01-02","task":"A","time_minutes":5,"mood":3,"category":"Work"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
	var back model.Entry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != e {
		t.Errorf("unmarshalled = %+v, want %+v", back, e)
	}
}

func TestNewEntry(t *testing.T) {
	day := model.Date{Year: 2024, Month: time.January, Day: 1}
	tests := []struct {
		name     string
		task     string
		minutes  int
		mood     int
		category string
		wantErr  error
		wantCat  string
	}{
		// Time and mood bounds match the entry form.
		{"valid", "Write", 30, 4, "Work", nil, "Work"},
		{"default category", "Write", 30, 4, "  ", nil, model.DefaultCategory},
		{"empty task", " ", 30, 4, "Work", model.ErrEmptyTask, ""},
		{"zero minutes", "Write", 0, 4, "Work", model.ErrMinutesRange, ""},
		{"full day", "Write", 1440, 4, "Work", nil, "Work"},
		{"too long", "Write", 1441, 4, "Work", model.ErrMinutesRange, ""},
		{"mood low", "Write", 30, 0, "Work", model.ErrMoodRange, ""},
		{"mood high", "Write", 30, 6, "Work", model.ErrMoodRange, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := model.NewEntry(day, tt.task, tt.minutes, tt.mood, tt.category)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewEntry error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && e.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", e.Category, tt.wantCat)
			}
		})
	}
}

func TestNewEntryNormalizesLineBreaks(t *testing.T) {
	day := model.Date{Year: 2024, Month: time.January, Day: 1}
	e, err := model.NewEntry(day, "line one\r\nline two\rline three", 30, 4, "Deep\r\nwork")
	if err != nil {
		t.Fatal(err)
	}
	if want := "line one\nline two\nline three"; e.Task != want {
		t.Errorf("Task = %q, want %q", e.Task, want)
	}
	if want := "Deep\nwork"; e.Category != want {
		t.Errorf("Category = %q, want %q", e.Category, want)
	}
}

func TestSortedByDate(t *testing.T) {
	d1 := model.Date{Year: 2024, Month: time.January, Day: 1}
	d2 := model.Date{Year: 2024, Month: time.January, Day: 2}
	set := model.EntrySet{
		{Date: d2, Task: "C"},
		{Date: d1, Task: "A"},
		{Date: d1, Task: "B"},
	}

	asc := set.SortedByDate(true)
	if asc[0].Task != "A" || asc[1].Task != "B" || asc[2].Task != "C" {
		t.Errorf("ascending order = [%s %s %s], want [A B C]", asc[0].Task, asc[1].Task, asc[2].Task)
	}
	desc := set.SortedByDate(false)
	if desc[0].Task != "C" || desc[1].Task != "A" || desc[2].Task != "B" {
		t.Errorf("descending order = [%s %s %s], want [C A B]", desc[0].Task, desc[1].Task, desc[2].Task)
	}
	if set[0].Task != "C" {
		t.Error("SortedByDate modified its receiver")
	}
}

func TestAppendDoesNotAlias(t *testing.T) {
	base := make(model.EntrySet, 1, 4)
	a := base.Append(model.Entry{Task: "a"})
	b := base.Append(model.Entry{Task: "b"})
	if a[1].Task != "a" || b[1].Task != "b" {
		t.Errorf("Append aliased backing arrays: a=%q b=%q", a[1].Task, b[1].Task)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	e := model.Entry{Date: model.Date{Year: 2024, Month: time.January, Day: 1}, Task: "Plan, then do", Minutes: 30, Mood: 4, Category: "Work"}
	rec := e.Record()
	if len(rec) != len(model.Columns) {
		t.Fatalf("Record len = %d, want %d", len(rec), len(model.Columns))
	}
	back, err := model.ParseRecord(rec)
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if back != e {
		t.Errorf("ParseRecord = %+v, want %+v", back, e)
	}
}

func TestParseRecordErrors(t *testing.T) {
	tests := []struct {
		name   string
		rec    []string
		column string
	}{
		{"bad date", []string{"yesterday", "A", "30", "4", "Work"}, "Date"},
		{"bad time", []string{"2024-01-01", "A", "half", "4", "Work"}, "Time (min)"},
		{"bad mood", []string{"2024-01-01", "A", "30", "3.5", "Work"}, "Mood (1-5)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.ParseRecord(tt.rec)
			var fe *model.FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("ParseRecord error = %v, want *FieldError", err)
			}
			if fe.Column != tt.column {
				t.Errorf("Column = %q, want %q", fe.Column, tt.column)
			}
		})
	}

	if _, err := model.ParseRecord([]string{"2024-01-01", "A"}); err == nil {
		t.Error("expected error for short record")
	}
}

func TestParseRecordKeepsOutOfRange(t *testing.T) {
	e, err := model.ParseRecord([]string{"2024-01-01", "A", "5000", "9", "Work"})
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if e.Minutes != 5000 || e.Mood != 9 {
		t.Errorf("got minutes=%d mood=%d, want 5000 and 9", e.Minutes, e.Mood)
	}
}
