// Package planner derives day-by-day schedules from a trip's date range.
// Every function here is pure: no state, no side effects, identical output
// for identical input.
package planner

import (
	"fmt"
	"time"

	"github.com/keepgoing/tripmap/internal/domain"
)

// Day is one day of a trip's span: a 1-based ordinal plus its calendar date.
// Days are derived on demand from the date range, never stored.
type Day struct {
	Day  int    `json:"day"`
	Date string `json:"date"`
}

// IsValidRange reports whether (start, end) form a usable date range.
// Both dates must be set and end must not precede start.
// A single-day trip (end == start) is valid.
func IsValidRange(start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !truncate(end).Before(truncate(start))
}

// DaysBetween returns the inclusive day count of the range.
// Returns domain.ErrInvalidRange when end precedes start.
func DaysBetween(start, end time.Time) (int, error) {
	s, e := truncate(start), truncate(end)
	if e.Before(s) {
		return 0, fmt.Errorf("planner.DaysBetween: %w", domain.ErrInvalidRange)
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// GenerateDays produces one Day per calendar day of the range, ordinals
// 1..N, advancing one day at a time from start. Returns an empty slice when
// either date is unset or the range is invalid.
func GenerateDays(start, end time.Time) []Day {
	if !IsValidRange(start, end) {
		return []Day{}
	}
	n, err := DaysBetween(start, end)
	if err != nil {
		return []Day{}
	}
	days := make([]Day, 0, n)
	d := truncate(start)
	for i := 1; i <= n; i++ {
		days = append(days, Day{Day: i, Date: d.Format(domain.DateFormat)})
		d = d.AddDate(0, 0, 1)
	}
	return days
}

// truncate normalizes t to midnight UTC so day arithmetic is immune to
// time-of-day components and DST transitions in local zones.
func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
