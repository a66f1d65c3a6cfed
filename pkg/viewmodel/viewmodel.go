// Package viewmodel derives the grouped, filtered and sorted views of journal
// entries shown by the front-ends. Every function is pure: inputs are never
// modified and the same input always yields the same output.
package viewmodel

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/diary/pkg/entry"
)

// Order is the sort directive for day groups.
type Order int

const (
	// OrderDescending shows the newest day first.
	OrderDescending Order = iota
	// OrderAscending shows the oldest day first.
	OrderAscending
)

func (o Order) String() string {
	if o == OrderAscending {
		return "asc"
	}
	return "desc"
}

// ParseOrder accepts asc, ascending, desc and descending.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return OrderAscending, nil
	case "desc", "descending", "":
		return OrderDescending, nil
	default:
		return OrderDescending, fmt.Errorf("viewmodel: unknown sort order %q", s)
	}
}

// Group is the set of entries created on one calendar day.
type Group struct {
	// Day is the YYYY-MM-DD key.
	Day string
	// Date is Day parsed at midnight UTC. Zero for entries without a date.
	Date    time.Time
	Entries []*entry.Entry
}

// Option customises a view.
type Option func(*viewOptions)

type viewOptions struct {
	order Order
	query string
	since time.Time
}

func (v viewOptions) keep(e *entry.Entry) bool {
	if e == nil || !e.Matches(v.query) {
		return false
	}
	return v.since.IsZero() || !e.Created.Before(v.since)
}

// WithOrder sets the sort directive.
func WithOrder(o Order) Option {
	return func(v *viewOptions) {
		v.order = o
	}
}

// WithQuery keeps only entries whose title or content contains q.
func WithQuery(q string) Option {
	return func(v *viewOptions) {
		v.query = q
	}
}

// WithSince keeps only entries created at or after t. Undated entries are
// dropped. A zero t keeps everything.
func WithSince(t time.Time) Option {
	return func(v *viewOptions) {
		v.since = t
	}
}

func resolve(opts []Option) viewOptions {
	v := viewOptions{order: OrderDescending}
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

// BuildGroups partitions entries by creation day. Groups are ordered by day
// per the directive; inside a group entries keep their input order.
func BuildGroups(entries []*entry.Entry, opts ...Option) []Group {
	v := resolve(opts)

	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, e := range entries {
		if !v.keep(e) {
			continue
		}
		day := e.Day()
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			g := Group{Day: day}
			if t, err := entry.ParseDay(day); err == nil {
				g.Date = t
			}
			groups = append(groups, g)
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		// YYYY-MM-DD keys order lexicographically; undated entries go last.
		a, b := groups[i].Day, groups[j].Day
		switch {
		case a == "":
			return false
		case b == "":
			return true
		case v.order == OrderAscending:
			return a < b
		default:
			return a > b
		}
	})
	return groups
}

func filter(entries []*entry.Entry, v viewOptions) []*entry.Entry {
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if v.keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// SortByTitle returns the matching entries ordered by title. Ties keep input
// order.
func SortByTitle(entries []*entry.Entry, opts ...Option) []*entry.Entry {
	v := resolve(opts)
	out := filter(entries, v)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Title < out[j].Title
	})
	return out
}

// SortByDate returns the matching entries ordered by creation time per the
// directive. Ties keep input order.
func SortByDate(entries []*entry.Entry, opts ...Option) []*entry.Entry {
	v := resolve(opts)
	out := filter(entries, v)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Created.Time, out[j].Created.Time
		if v.order == OrderAscending {
			return a.Before(b)
		}
		return a.After(b)
	})
	return out
}

// Flatten returns the entries of groups in display order.
func Flatten(groups []Group) []*entry.Entry {
	n := 0
	for _, g := range groups {
		n += len(g.Entries)
	}
	out := make([]*entry.Entry, 0, n)
	for _, g := range groups {
		out = append(out, g.Entries...)
	}
	return out
}

// Sort selects how a listing is arranged: grouped by day in either order, or
// flat by title.
type Sort string

const (
	SortNewest Sort = "desc"
	SortOldest Sort = "asc"
	SortTitle  Sort = "title"
)

// ParseSort accepts the ParseOrder values and "title".
func ParseSort(s string) (Sort, error) {
	if strings.EqualFold(strings.TrimSpace(s), string(SortTitle)) {
		return SortTitle, nil
	}
	o, err := ParseOrder(s)
	if err != nil {
		return SortNewest, fmt.Errorf("viewmodel: unknown sort %q (expected asc, desc or title)", s)
	}
	if o == OrderAscending {
		return SortOldest, nil
	}
	return SortNewest, nil
}

// Order is the day order for grouped sorts.
func (s Sort) Order() Order {
	if s == SortOldest {
		return OrderAscending
	}
	return OrderDescending
}

// Grouped reports whether the sort produces day groups.
func (s Sort) Grouped() bool {
	return s != SortTitle
}
