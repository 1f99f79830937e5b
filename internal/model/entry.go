package model

import (
	"errors"
	"sort"
	"strings"
)

const (
	// DefaultCategory is assigned when an entry is created without one.
	DefaultCategory = "General"

	MinMinutes = 1
	MaxMinutes = 1440
	MinMood    = 1
	MaxMood    = 5
)

var (
	ErrEmptyTask    = errors.New("task cannot be empty")
	ErrMinutesRange = errors.New("time must be between 1 and 1440 minutes")
	ErrMoodRange    = errors.New("mood must be between 1 and 5")
)

// Entry is one logged activity. Entries are never modified once created.
type Entry struct {
	Date     Date   `json:"date"`
	Task     string `json:"task"`
	Minutes  int    `json:"time_minutes"`
	Mood     int    `json:"mood"`
	Category string `json:"category"`
}

// NewEntry builds an Entry from user input, enforcing the input ranges.
// A blank category becomes DefaultCategory. CR LF and lone CR line breaks
// in task and category become LF.
//
// Only input surfaces call this; entries read back from storage are taken
// as they are.
func NewEntry(date Date, task string, minutes, mood int, category string) (Entry, error) {
	if strings.TrimSpace(task) == "" {
		return Entry{}, ErrEmptyTask
	}
	if minutes < MinMinutes || minutes > MaxMinutes {
		return Entry{}, ErrMinutesRange
	}
	if mood < MinMood || mood > MaxMood {
		return Entry{}, ErrMoodRange
	}
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	task, category = normalizeBreaks(task), normalizeBreaks(category)
	return Entry{
		Date:     date,
		Task:     task,
		Minutes:  minutes,
		Mood:     mood,
		Category: category,
	}, nil
}

// EntrySet is the ordered collection of all logged entries.
type EntrySet []Entry

// Len returns the number of entries.
func (s EntrySet) Len() int { return len(s) }

// Append returns a new set with e added at the end. s is not modified.
func (s EntrySet) Append(e ...Entry) EntrySet {
	out := make(EntrySet, 0, len(s)+len(e))
	out = append(out, s...)
	return append(out, e...)
}

// SortedByDate returns a copy of s ordered by date. Entries sharing a date
// keep their relative order.
func (s EntrySet) SortedByDate(ascending bool) EntrySet {
	out := make(EntrySet, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

var breakReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func normalizeBreaks(s string) string { return breakReplacer.Replace(s) }
