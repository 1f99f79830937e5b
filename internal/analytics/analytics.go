// Package analytics computes grouped summaries over an entry set.
//
// Every function is a pure transform of its input: nothing is cached and
// values are not range-checked, so hand-edited data is summarised as-is.
package analytics

import (
	"sort"

	"github.com/Tiliavir/productivity-log/internal/model"
)

// DailyTimeTotals sums minutes per date. Dates without entries are absent.
func DailyTimeTotals(set model.EntrySet) map[model.Date]int {
	totals := make(map[model.Date]int)
	for _, e := range set {
		totals[e.Date] += e.Minutes
	}
	return totals
}

// DailyMoodAverage returns the arithmetic mean mood per date, unrounded.
func DailyMoodAverage(set model.EntrySet) map[model.Date]float64 {
	sums := make(map[model.Date]int)
	counts := make(map[model.Date]int)
	for _, e := range set {
		sums[e.Date] += e.Mood
		counts[e.Date]++
	}

	avg := make(map[model.Date]float64, len(sums))
	for d, sum := range sums {
		avg[d] = float64(sum) / float64(counts[d])
	}
	return avg
}

// CategoryTimeTotals sums minutes per category. Categories are compared
// exactly, so "work" and "Work" are separate keys.
func CategoryTimeTotals(set model.EntrySet) map[string]int {
	totals := make(map[string]int)
	for _, e := range set {
		totals[e.Category] += e.Minutes
	}
	return totals
}

// SortedDates returns the keys of m in ascending date order.
func SortedDates[V any](m map[model.Date]V) []model.Date {
	dates := make([]model.Date, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// SortedCategories returns the keys of totals, largest total first and
// ties by name.
func SortedCategories(totals map[string]int) []string {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// Overview is a one-line summary of a set.
type Overview struct {
	Entries  int     `json:"entries"`
	Minutes  int     `json:"total_minutes"`
	MeanMood float64 `json:"mean_mood"`
}

// Totals returns the entry count, total minutes and mean mood of set.
// MeanMood is 0 for an empty set.
func Totals(set model.EntrySet) Overview {
	var o Overview
	var moodSum int
	for _, e := range set {
		o.Entries++
		o.Minutes += e.Minutes
		moodSum += e.Mood
	}
	if o.Entries > 0 {
		o.MeanMood = float64(moodSum) / float64(o.Entries)
	}
	return o
}
