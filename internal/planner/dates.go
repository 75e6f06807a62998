package planner

import (
	"math"
	"time"
)

// DateLayout is the calendar-date format used throughout plans, tasks and
// archives. Dates are local, day-resolution, inclusive on both ends.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string in local time. The second return
// is false for malformed input; callers degrade rather than error.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t as a YYYY-MM-DD string in local time.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// dateOf truncates t to local midnight.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns the whole calendar days from a to b (negative when
// b precedes a). Both arguments are truncated to local midnight first, so
// DST shifts cannot skew the count.
func daysBetween(a, b time.Time) int {
	a = dateOf(a)
	b = dateOf(b)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// windowContains reports whether day falls inside the inclusive
// [startDate, endDate] window of g. Malformed dates exclude the goal.
func windowContains(g Goal, day time.Time) bool {
	start, ok := ParseDate(g.StartDate)
	if !ok {
		return false
	}
	end, ok := ParseDate(g.EndDate)
	if !ok {
		return false
	}
	d := dateOf(day)
	return !d.Before(start) && !d.After(end)
}
