package analytics

import "github.com/Tiliavir/productivity-log/internal/model"

// Filter narrows a set by inclusive date range and category. Nil bounds
// and an empty category list do not restrict.
type Filter struct {
	From       *model.Date
	To         *model.Date
	Categories []string
}

// IsZero reports whether f keeps every entry.
func (f Filter) IsZero() bool {
	return f.From == nil && f.To == nil && len(f.Categories) == 0
}

// Apply returns the entries of set matching f, in their original order.
func (f Filter) Apply(set model.EntrySet) model.EntrySet {
	var wanted map[string]bool
	if len(f.Categories) > 0 {
		wanted = make(map[string]bool, len(f.Categories))
		for _, c := range f.Categories {
			wanted[c] = true
		}
	}

	out := model.EntrySet{}
	for _, e := range set {
		if f.From != nil && e.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Date.After(*f.To) {
			continue
		}
		if wanted != nil && !wanted[e.Category] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Bounds returns the earliest and latest dates in set. ok is false for an
// empty set.
func Bounds(set model.EntrySet) (first, last model.Date, ok bool) {
	for i, e := range set {
		if i == 0 || e.Date.Before(first) {
			first = e.Date
		}
		if i == 0 || e.Date.After(last) {
			last = e.Date
		}
	}
	return first, last, len(set) > 0
}

// DistinctCategories lists the categories of set in first-seen order.
func DistinctCategories(set model.EntrySet) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range set {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}
