package msgraph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Tiliavir/productivity-log/internal/model"
	"github.com/Tiliavir/productivity-log/internal/storage"
	"github.com/Tiliavir/productivity-log/internal/timecalc"
)

// ImportResult holds counters for an import run.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   int
}

// ImportOptions configures how events become entries.
type ImportOptions struct {
	Category string
	Mood     int
	// Timezone is the IANA zone event times are expressed in; "" means UTC.
	Timezone string
	DryRun   bool
}

// errOutOfRange marks events whose duration cannot be logged.
var errOutOfRange = errors.New("duration outside loggable range")

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix
// when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// skipReason returns why event is not imported, or "" if it should be.
func skipReason(event CalendarEvent) string {
	switch {
	case event.IsCancelled:
		return "cancelled"
	case event.IsAllDay:
		return "all-day"
	case event.Sensitivity == "private":
		return "private"
	case event.ShowAs == "free":
		return "free"
	case event.Start.DateTime == "" || event.End.DateTime == "":
		return "no start or end time"
	}
	return ""
}

// MapEvent converts a Graph calendar event into an entry dated on the
// event's start day. Events whose rounded duration falls outside the
// loggable range are rejected.
func MapEvent(event CalendarEvent, opts ImportOptions) (model.Entry, error) {
	loc, err := loadLocation(opts.Timezone)
	if err != nil {
		return model.Entry{}, err
	}
	start, err := parseGraphTime(event.Start.DateTime, loc)
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, loc)
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing end time: %w", err)
	}

	minutes := timecalc.RoundMinutes(end.Sub(start))
	if minutes < model.MinMinutes || minutes > model.MaxMinutes {
		return model.Entry{}, fmt.Errorf("%w: %d minutes", errOutOfRange, minutes)
	}
	subject := event.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	return model.NewEntry(model.DateOf(start), subject, minutes, opts.Mood, opts.Category)
}

// Import appends every new importable event to store. Events already in
// ledger are skipped, never updated. The store is loaded and saved once;
// a dry run only reports. Progress lines go to out.
func Import(store storage.Store, ledger *Ledger, events []CalendarEvent, opts ImportOptions, out io.Writer) (ImportResult, error) {
	var result ImportResult

	set, err := store.Load()
	if err != nil {
		return result, err
	}

	var added []model.Entry
	for _, event := range events {
		if reason := skipReason(event); reason != "" {
			fmt.Fprintf(out, "  – Skipped:  %s (%s)\n", event.Subject, reason)
			result.Skipped++
			continue
		}
		if ledger.Has(event.ID) {
			fmt.Fprintf(out, "  – Skipped:  %s (already imported)\n", event.Subject)
			result.Skipped++
			continue
		}

		entry, err := MapEvent(event, opts)
		if errors.Is(err, errOutOfRange) {
			fmt.Fprintf(out, "  – Skipped:  %s (%v)\n", event.Subject, err)
			result.Skipped++
			continue
		}
		if err != nil {
			fmt.Fprintf(out, "  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}

		ledger.Add(event.ID)
		added = append(added, entry)
		fmt.Fprintf(out, "  ✓ Imported: %s %s (%s)\n", entry.Date, entry.Task, timecalc.FormatMinutes(entry.Minutes))
		result.Imported++
	}

	if opts.DryRun || len(added) == 0 {
		return result, nil
	}
	if err := store.Save(set.Append(added...)); err != nil {
		return result, err
	}
	if err := ledger.Save(); err != nil {
		return result, fmt.Errorf("entries saved but import ledger was not (the next sync may duplicate them): %w", err)
	}
	return result, nil
}

// LedgerPath returns the import ledger location inside the data directory.
func LedgerPath(base string) string {
	return filepath.Join(base, "outlook_imported.json")
}

// Ledger records the Graph event IDs that have been imported.
type Ledger struct {
	path string
	ids  map[string]struct{}
}

// LoadLedger reads the ledger at path. A missing file is an empty ledger.
func LoadLedger(path string) (*Ledger, error) {
	l := &Ledger{path: path, ids: map[string]struct{}{}}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading import ledger: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("corrupt import ledger %s: %w", path, err)
	}
	for _, id := range ids {
		l.ids[id] = struct{}{}
	}
	return l, nil
}

// Has reports whether id was imported.
func (l *Ledger) Has(id string) bool {
	_, ok := l.ids[id]
	return ok
}

// Add records id. It is not persisted until Save.
func (l *Ledger) Add(id string) { l.ids[id] = struct{}{} }

// Len returns the number of recorded IDs.
func (l *Ledger) Len() int { return len(l.ids) }

// Save writes the ledger as a sorted JSON array.
func (l *Ledger) Save() error {
	ids := make([]string, 0, len(l.ids))
	for id := range l.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling import ledger: %w", err)
	}
	return writeFileAtomic(l.path, data)
}
