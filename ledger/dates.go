package ledger

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date. A full RFC3339 timestamp is also
// accepted and reduced to its calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err == nil {
		return t, nil
	}
	if ts, tsErr := time.Parse(time.RFC3339, s); tsErr == nil {
		return CalendarDay(ts), nil
	}
	return time.Time{}, err
}

// CalendarDay drops the time of day, keeping the date as seen in t's own
// location, and returns it as UTC midnight.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders t as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return CalendarDay(t).Format(DateLayout)
}
