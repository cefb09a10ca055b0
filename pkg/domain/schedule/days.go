package schedule

import (
	"fmt"
	"time"
)

// dayNames is the fixed Sunday-first table used for all day-name matching.
// Index corresponds to time.Weekday. Working-day configuration must use
// these exact names; locale-dependent formatting is never consulted.
var dayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// DayName returns the canonical English day name for a date.
func DayName(t time.Time) string {
	return dayNames[int(t.Weekday())]
}

// IsDayName reports whether s is one of the seven canonical day names.
func IsDayName(s string) bool {
	for _, n := range dayNames {
		if n == s {
			return true
		}
	}
	return false
}

// DateOf truncates a time to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStartOf returns midnight of the Sunday on or before t. Weeks are
// anchored Sunday-first, matching the day-name table.
func WeekStartOf(t time.Time) time.Time {
	return DateOf(t).AddDate(0, 0, -int(t.Weekday()))
}

// SameDate reports whether two times fall on the same calendar date.
// Time of day is ignored.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseClock parses a strict "HH:MM" 24-hour clock string.
func ParseClock(s string) (hour, minute int, err error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return h, m, nil
}

// AtClock returns the given date with its time of day replaced.
func AtClock(date time.Time, hour, minute int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, date.Location())
}
