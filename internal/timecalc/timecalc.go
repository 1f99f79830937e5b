package timecalc

import (
	"fmt"
	"time"

	"github.com/Tiliavir/productivity-log/internal/model"
)

// FormatMinutes formats minutes as a human-readable string like "1h 40m" or "45m".
func FormatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// RoundMinutes converts a duration to whole minutes, rounding half up.
func RoundMinutes(d time.Duration) int {
	return int(d.Round(time.Minute) / time.Minute)
}

// Today returns the calendar date of t in its own location.
func Today(t time.Time) model.Date {
	return model.DateOf(t)
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (model.Date, model.Date) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := model.DateOf(t).AddDays(-(wd - 1))
	return monday, monday.AddDays(6)
}

// MonthRange returns the first and last day of the month containing t.
func MonthRange(t time.Time) (model.Date, model.Date) {
	first := model.Date{Year: t.Year(), Month: t.Month(), Day: 1}
	last := model.DateOf(first.Time().AddDate(0, 1, -1))
	return first, last
}

// DaysBetween returns the number of calendar days from a to b (b-a).
func DaysBetween(a, b model.Date) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}
