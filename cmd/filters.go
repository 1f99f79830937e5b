package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tiliavir/productivity-log/internal/analytics"
	"github.com/Tiliavir/productivity-log/internal/model"
	"github.com/Tiliavir/productivity-log/internal/timecalc"
)

// filterFlags are the entry selection flags shared by the reading commands.
type filterFlags struct {
	from       string
	to         string
	week       bool
	month      bool
	categories []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Only entries on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Only entries on or before this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.week, "week", false, "Only entries from the current week")
	cmd.Flags().BoolVar(&f.month, "month", false, "Only entries from the current month")
	cmd.Flags().StringArrayVar(&f.categories, "category", nil, "Only entries in this category (repeatable)")
}

// build turns the flags into a filter; now anchors --week and --month.
func (f filterFlags) build(now time.Time) (analytics.Filter, error) {
	var filter analytics.Filter
	if (f.week || f.month) && (f.week == f.month || f.from != "" || f.to != "") {
		return filter, fmt.Errorf("--week and --month cannot be combined with each other or with --from/--to")
	}
	switch {
	case f.week:
		from, to := timecalc.WeekRange(now)
		filter.From, filter.To = &from, &to
	case f.month:
		from, to := timecalc.MonthRange(now)
		filter.From, filter.To = &from, &to
	}
	if f.from != "" {
		d, err := parseDateFlag("from", f.from)
		if err != nil {
			return filter, err
		}
		filter.From = &d
	}
	if f.to != "" {
		d, err := parseDateFlag("to", f.to)
		if err != nil {
			return filter, err
		}
		filter.To = &d
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, fmt.Errorf("--to %s is before --from %s", filter.To, filter.From)
	}
	filter.Categories = f.categories
	return filter, nil
}

func parseDateFlag(name, value string) (model.Date, error) {
	d, err := model.ParseDate(value)
	if err != nil {
		return d, fmt.Errorf("invalid --%s value %q: want YYYY-MM-DD", name, value)
	}
	return d, nil
}

// selectEntries loads the store and applies f.
func selectEntries(f filterFlags) (model.EntrySet, error) {
	filter, err := f.build(time.Now())
	if err != nil {
		return nil, err
	}
	set, err := loadEntries()
	if err != nil {
		return nil, err
	}
	if filter.IsZero() {
		return set, nil
	}
	selected := filter.Apply(set)
	log.Debug("filter applied", zap.Int("kept", selected.Len()), zap.Int("of", set.Len()))
	return selected, nil
}
