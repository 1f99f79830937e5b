package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/productivity-log/internal/model"
	"github.com/Tiliavir/productivity-log/internal/timecalc"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{61, "1h 1m"},
		{100, "1h 40m"},
		{1440, "24h 0m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatMinutes(tt.minutes)
		if got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestRoundMinutes(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{29 * time.Second, 0},
		{30 * time.Second, 1},
		{90 * time.Minute, 90},
		{90*time.Minute + 40*time.Second, 91},
	}
	for _, tt := range tests {
		got := timecalc.RoundMinutes(tt.d)
		if got != tt.want {
			t.Errorf("RoundMinutes(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday (week 9).
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	monday, sunday := timecalc.WeekRange(fri)

	wantMonday := model.Date{Year: 2026, Month: time.February, Day: 23}
	wantSunday := model.Date{Year: 2026, Month: time.March, Day: 1}

	if monday != wantMonday {
		t.Errorf("WeekRange monday = %v, want %v", monday, wantMonday)
	}
	if sunday != wantSunday {
		t.Errorf("WeekRange sunday = %v, want %v", sunday, wantSunday)
	}

	// Sunday belongs to the week that started the previous Monday.
	sun := time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)
	if m, _ := timecalc.WeekRange(sun); m != wantMonday {
		t.Errorf("WeekRange(sunday) monday = %v, want %v", m, wantMonday)
	}
}

func TestMonthRange(t *testing.T) {
	first, last := timecalc.MonthRange(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	if first != (model.Date{Year: 2024, Month: time.February, Day: 1}) {
		t.Errorf("MonthRange first = %v", first)
	}
	if last != (model.Date{Year: 2024, Month: time.February, Day: 29}) {
		t.Errorf("MonthRange last = %v, want 2024-02-29", last)
	}
}

func TestDaysBetween(t *testing.T) {
	a := model.Date{Year: 2024, Month: time.February, Day: 28}
	b := model.Date{Year: 2024, Month: time.March, Day: 1}
	if got := timecalc.DaysBetween(a, b); got != 2 {
		t.Errorf("DaysBetween = %d, want 2", got)
	}
}
