package datekey

import (
	"fmt"
	"time"
)

// Layout is the canonical date-key format identifying a day bucket.
const Layout = "2006-01-02"

// Format returns the canonical date-key for the given time, in the time's location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse converts a canonical date-key back to a time at UTC midnight.
func Parse(key string) (time.Time, error) {
	t, err := time.Parse(Layout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// IsValid reports whether key is a well-formed canonical date-key.
func IsValid(key string) bool {
	_, err := time.Parse(Layout, key)
	return err == nil
}

// WeekStart returns the Monday on or before the given date, at midnight in the
// date's location. Sunday counts as the last day of the week, so every day of a
// Monday-Sunday span maps to the same Monday. This is the canonical
// week-bucketing rule; changing it changes every weekly and historical total.
func WeekStart(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 { // Sunday
		offset = 6
	}
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -offset)
}

// Label returns a short human-friendly label for a date-key, e.g. "Sun, Feb 15".
// Unparseable keys are returned verbatim.
func Label(key string) string {
	t, err := Parse(key)
	if err != nil {
		return key
	}
	return t.Format("Mon, Jan 2")
}

// WeekLabel returns a label for the week starting at weekStart, e.g.
// "Feb 9 - Feb 15".
func WeekLabel(weekStart time.Time) string {
	end := weekStart.AddDate(0, 0, 6)
	return weekStart.Format("Jan 2") + " - " + end.Format("Jan 2")
}
