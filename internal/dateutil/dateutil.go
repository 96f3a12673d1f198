// Package dateutil provides local-calendar date string parsing and arithmetic.
package dateutil

import (
	"errors"
	"time"
)

// Layout is the canonical day-identifier format.
const Layout = "2006-01-02"

// ErrInvalidDateFormat reports a date string that is not YYYY-MM-DD.
var ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")

// ParseDate parses a YYYY-MM-DD string as local midnight.
// An empty string defaults to today.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatDate formats a time as a day identifier.
func FormatDate(t time.Time) string {
	return t.Format(Layout)
}

// Today returns today's day identifier in the local calendar.
func Today() string {
	return FormatDate(time.Now())
}

// Valid returns true if s is a well-formed day identifier.
func Valid(s string) bool {
	_, err := time.ParseInLocation(Layout, s, time.Local)
	return err == nil
}

// AddDays shifts a day identifier by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := time.ParseInLocation(Layout, date, time.Local)
	if err != nil {
		return "", ErrInvalidDateFormat
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}
