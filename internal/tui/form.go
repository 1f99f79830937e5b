// Package tui holds the interactive entry form and the terminal renderers
// used by the list and summary commands.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tiliavir/productivity-log/internal/model"
)

// Form field order.
const (
	fieldTask = iota
	fieldMinutes
	fieldMood
	fieldCategory
	fieldDate
	fieldCount
)

var fieldLabels = [fieldCount]string{"Task", "Time (min)", "Mood (1-5)", "Category", "Date"}

// FormDefaults pre-fills the form.
type FormDefaults struct {
	Category string
	Mood     int
	Date     model.Date

	// Categories already in use, shown as a hint under the category field.
	Categories []string
}

// Form is the bubbletea model for entering one entry.
type Form struct {
	inputs    [fieldCount]textinput.Model
	known     []string
	focus     int
	err       string
	entry     model.Entry
	submitted bool
	cancelled bool
}

// NewForm returns a form focused on the task field.
func NewForm(d FormDefaults) Form {
	f := Form{known: d.Categories}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		f.inputs[i] = in
	}
	f.inputs[fieldTask].Placeholder = "What did you work on?"
	f.inputs[fieldMinutes].Placeholder = "e.g. 45"
	f.inputs[fieldMinutes].CharLimit = 4
	f.inputs[fieldMood].CharLimit = 1
	if d.Mood != 0 {
		f.inputs[fieldMood].SetValue(strconv.Itoa(d.Mood))
	}
	f.inputs[fieldCategory].SetValue(d.Category)
	f.inputs[fieldCategory].Placeholder = model.DefaultCategory
	f.inputs[fieldDate].Placeholder = model.DateLayout
	if !d.Date.IsZero() {
		f.inputs[fieldDate].SetValue(d.Date.String())
	}
	f.inputs[fieldTask].Focus()
	return f
}

func (f Form) Init() tea.Cmd {
	return textinput.Blink
}

func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd
	}

	switch key.String() {
	case "ctrl+c", "esc":
		f.cancelled = true
		return f, tea.Quit
	case "tab", "down":
		return f, f.moveFocus(f.focus + 1)
	case "shift+tab", "up":
		return f, f.moveFocus(f.focus - 1)
	case "enter":
		if f.focus < fieldDate {
			return f, f.moveFocus(f.focus + 1)
		}
		entry, field, err := f.parse()
		if err != nil {
			f.err = err.Error()
			return f, f.moveFocus(field)
		}
		f.entry = entry
		f.err = ""
		f.submitted = true
		return f, tea.Quit
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// moveFocus focuses field i, wrapping around at both ends.
func (f *Form) moveFocus(i int) tea.Cmd {
	i = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[i].Focus()
}

// parse validates the inputs and returns the entry, or the field to fix.
func (f Form) parse() (model.Entry, int, error) {
	task := strings.TrimSpace(f.inputs[fieldTask].Value())
	if task == "" {
		return model.Entry{}, fieldTask, model.ErrEmptyTask
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldMinutes].Value()))
	if err != nil {
		return model.Entry{}, fieldMinutes, fmt.Errorf("time must be a whole number of minutes")
	}
	mood, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldMood].Value()))
	if err != nil {
		return model.Entry{}, fieldMood, model.ErrMoodRange
	}
	date, err := model.ParseDate(strings.TrimSpace(f.inputs[fieldDate].Value()))
	if err != nil {
		return model.Entry{}, fieldDate, fmt.Errorf("date must be %s", model.DateLayout)
	}

	entry, err := model.NewEntry(date, task, minutes, mood, strings.TrimSpace(f.inputs[fieldCategory].Value()))
	switch {
	case errors.Is(err, model.ErrMinutesRange):
		return entry, fieldMinutes, err
	case errors.Is(err, model.ErrMoodRange):
		return entry, fieldMood, err
	case err != nil:
		return entry, fieldTask, err
	}
	return entry, 0, nil
}

func (f Form) View() string {
	var b strings.Builder
	b.WriteString(Title("Log an entry") + "\n\n")
	for i, in := range f.inputs {
		style := labelStyle
		if i == f.focus {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(fieldLabels[i]) + " " + in.View() + "\n")
		if i == fieldCategory && i == f.focus && len(f.known) > 0 {
			b.WriteString(labelStyle.Render("") + " " + Muted("known: "+strings.Join(f.known, ", ")) + "\n")
		}
	}
	if f.err != "" {
		b.WriteString("\n" + errorStyle.Render(f.err) + "\n")
	}
	b.WriteString("\n" + Muted("tab/shift+tab to move • enter on the last field to save • esc to cancel") + "\n")
	return b.String()
}

// Entry returns the submitted entry; ok is false if the form was cancelled
// or is still open.
func (f Form) Entry() (model.Entry, bool) {
	return f.entry, f.submitted
}

// RunForm shows the form and blocks until it is submitted or cancelled.
func RunForm(d FormDefaults) (model.Entry, bool, error) {
	final, err := tea.NewProgram(NewForm(d)).Run()
	if err != nil {
		return model.Entry{}, false, fmt.Errorf("running entry form: %w", err)
	}
	entry, ok := final.(Form).Entry()
	return entry, ok, nil
}
