package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tiliavir/productivity-log/internal/model"
)

var today = model.Date{Year: 2024, Month: time.January, Day: 2}

func send(t *testing.T, f Form, msgs ...tea.Msg) (Form, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var m tea.Model
		m, cmd = f.Update(msg)
		f = m.(Form)
	}
	return f, cmd
}

func typed(s string) tea.Msg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestFormSubmit(t *testing.T) {
	f := NewForm(FormDefaults{Category: "Work", Mood: 3, Date: today})
	f, cmd := send(t, f, typed("Reading"), enter, typed("45"), enter, enter, enter, enter)
	if !isQuit(cmd) {
		t.Fatalf("form did not quit after submit; error %q", f.err)
	}
	got, ok := f.Entry()
	if !ok {
		t.Fatal("Entry() not submitted")
	}
	want := model.Entry{Date: today, Task: "Reading", Minutes: 45, Mood: 3, Category: "Work"}
	if got != want {
		t.Errorf("Entry() = %+v, want %+v", got, want)
	}
}

func TestFormCancel(t *testing.T) {
	f := NewForm(FormDefaults{Date: today})
	f, cmd := send(t, f, typed("Reading"), esc)
	if !isQuit(cmd) {
		t.Error("esc did not quit")
	}
	if _, ok := f.Entry(); ok {
		t.Error("cancelled form reported an entry")
	}
}

func TestFormNavigationWraps(t *testing.T) {
	f := NewForm(FormDefaults{Date: today})
	f, _ = send(t, f, tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.focus != fieldDate {
		t.Errorf("focus after shift+tab = %d, want %d", f.focus, fieldDate)
	}
	f, _ = send(t, f, tab)
	if f.focus != fieldTask {
		t.Errorf("focus after tab = %d, want %d", f.focus, fieldTask)
	}
}

func TestFormValidation(t *testing.T) {
	tests := []struct {
		name      string
		keys      []tea.Msg
		wantField int
		wantErr   error
	}{
		{"empty task", nil, fieldTask, model.ErrEmptyTask},
		{"minutes too large", []tea.Msg{typed("Reading"), tab, typed("2000")}, fieldMinutes, model.ErrMinutesRange},
		{"minutes not a number", []tea.Msg{typed("Reading"), tab, typed("ab")}, fieldMinutes, nil},
		{"mood out of range", []tea.Msg{typed("Reading"), tab, typed("30"), tab, tea.KeyMsg{Type: tea.KeyBackspace}, typed("9")}, fieldMood, model.ErrMoodRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewForm(FormDefaults{Mood: 3, Date: today})
			f, _ = send(t, f, tt.keys...)
			// Jump to the last field and submit.
			f, _ = send(t, f, tea.KeyMsg{Type: tea.KeyShiftTab})
			for f.focus != fieldDate {
				f, _ = send(t, f, tab)
			}
			f, _ = send(t, f, enter)
			if f.submitted {
				t.Fatal("invalid form was submitted")
			}
			if f.focus != tt.wantField {
				t.Errorf("focus = %d, want %d", f.focus, tt.wantField)
			}
			if f.err == "" {
				t.Error("no error shown")
			}
			if tt.wantErr != nil && f.err != tt.wantErr.Error() {
				t.Errorf("error = %q, want %q", f.err, tt.wantErr)
			}
			if !strings.Contains(f.View(), f.err) {
				t.Error("error not rendered in view")
			}
		})
	}
}

func TestFormBadDate(t *testing.T) {
	f := NewForm(FormDefaults{Mood: 3})
	f, _ = send(t, f, typed("Reading"), tab, typed("30"), tab, tab, tab, typed("2024-13-01"))
	f, _ = send(t, f, enter)
	if f.submitted {
		t.Fatal("bad date was accepted")
	}
	if f.focus != fieldDate || !strings.Contains(f.err, model.DateLayout) {
		t.Errorf("focus = %d, err = %q", f.focus, f.err)
	}
}

func TestEntriesTable(t *testing.T) {
	set := model.EntrySet{
		{Date: today, Task: "Reading", Minutes: 45, Mood: 4, Category: "Personal"},
	}
	out := EntriesTable(set)
	for _, want := range append(model.Labels(), "2024-01-02", "Reading", "45", "Personal") {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestBars(t *testing.T) {
	out := Bars([]Bar{
		{Label: "Work", Value: 60, Text: "1h 0m"},
		{Label: "Personal", Value: 30},
		{Label: "Idle", Value: 0},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3:\n%s", len(lines), out)
	}
	if got := strings.Count(lines[0], barRune); got != barWidth {
		t.Errorf("largest bar = %d runes, want %d", got, barWidth)
	}
	if got := strings.Count(lines[1], barRune); got != barWidth/2 {
		t.Errorf("half bar = %d runes, want %d", got, barWidth/2)
	}
	if strings.Contains(lines[2], barRune) {
		t.Error("zero value drew a bar")
	}
	if !strings.HasSuffix(lines[0], "1h 0m") || !strings.HasSuffix(lines[1], "30") {
		t.Errorf("bar texts wrong:\n%s", out)
	}
	if Bars(nil) != "" {
		t.Error("Bars(nil) should be empty")
	}
}

func TestParseErrorKinds(t *testing.T) {
	f := NewForm(FormDefaults{Mood: 3, Date: today})
	f, _ = send(t, f, typed("x"), tab, typed("0"))
	_, field, err := f.parse()
	if field != fieldMinutes || !errors.Is(err, model.ErrMinutesRange) {
		t.Errorf("parse() = field %d, err %v", field, err)
	}
}

func TestFormCategoryHint(t *testing.T) {
	f := NewForm(FormDefaults{Date: today, Categories: []string{"Work", "Personal"}})
	if strings.Contains(f.View(), "known:") {
		t.Error("hint shown before the category field is focused")
	}
	f, _ = send(t, f, tab, tab, tab)
	if !strings.Contains(f.View(), "known: Work, Personal") {
		t.Errorf("hint missing:\n%s", f.View())
	}
}
