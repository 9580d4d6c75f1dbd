// Package dates holds the calendar rules of the ledger: what "today" is,
// how ISO dates are parsed, and how timestamps are reduced to calendar days.
//
// Calendar days are represented as time.Time at midnight UTC so that values
// compare and persist identically regardless of the configured time zone.
package dates

import (
	"fmt"
	"sync"
	"time"
)

// Layout is the wire format of a calendar date.
const Layout = "2006-01-02"

var (
	mu       sync.RWMutex
	location = time.UTC

	// Now is the clock. Tests may replace it.
	Now = time.Now
)

// SetLocation sets the time zone that decides which calendar day "today" is.
func SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	mu.Lock()
	location = loc
	mu.Unlock()
}

// Location returns the configured time zone.
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return location
}

// Today returns the current calendar day in the configured time zone.
func Today() time.Time {
	return Day(Now().In(Location()))
}

// Day truncates t to its calendar day, keeping t's own wall-clock date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse reads a YYYY-MM-DD date.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseFlexible reads either YYYY-MM-DD or RFC 3339 and reduces the result
// to a calendar day.
func ParseFlexible(s string) (time.Time, error) {
	if t, err := time.Parse(Layout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD or RFC3339", s)
	}
	return Day(t), nil
}

// Format renders a calendar day as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// IsFuture reports whether day is strictly after today.
func IsFuture(day time.Time) bool {
	return Day(day).After(Today())
}

// IsPast reports whether day is strictly before today.
func IsPast(day time.Time) bool {
	return Day(day).Before(Today())
}
