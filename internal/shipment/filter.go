package shipment

import (
	"time"

	"github.com/jinzhu/now"
)

// FilterKind selects which of the mutually exclusive list predicates applies.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterCurrentWeek
	FilterRange
)

func (k FilterKind) String() string {
	switch k {
	case FilterNone:
		return "none"
	case FilterCurrentWeek:
		return "current_week"
	case FilterRange:
		return "range"
	}

	return "unknown"
}

// Filter narrows a listing by shipment date. Start and End are only
// meaningful for FilterRange and are inclusive calendar dates.
type Filter struct {
	Kind  FilterKind
	Start time.Time
	End   time.Time
}

func NoFilter() Filter {
	return Filter{Kind: FilterNone}
}

func CurrentWeek() Filter {
	return Filter{Kind: FilterCurrentWeek}
}

func Range(start, end time.Time) Filter {
	return Filter{Kind: FilterRange, Start: Day(start), End: Day(end)}
}

// Bounds resolves the filter into an inclusive date range relative to the
// given instant. ok is false for FilterNone.
func (f Filter) Bounds(at time.Time) (start, end time.Time, ok bool) {
	switch f.Kind {
	case FilterCurrentWeek:
		start, end = WeekOf(at)
		return start, end, true
	case FilterRange:
		return f.Start, f.End, true
	}

	return time.Time{}, time.Time{}, false
}

// WeekOf returns the Monday and the Sunday of the calendar week containing t.
// The week is evaluated in t's location.
func WeekOf(t time.Time) (time.Time, time.Time) {
	cfg := &now.Config{
		WeekStartDay: time.Monday,
		TimeLocation: t.Location(),
	}
	n := cfg.With(t)

	return Day(n.BeginningOfWeek()), Day(n.EndOfWeek())
}

// Day drops the clock part of t and expresses the calendar date as midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
