// Package datemath holds the calendar arithmetic the rest of the system
// is built on. Two different day counts exist on purpose: SpanDays is the
// inclusive length of a range (a one-day leave is 1, not 0), DaysUntil is
// the floored difference used for expiry thresholds. Call sites must
// pick the right one.
package datemath

import (
	"strings"
	"time"
)

const day = 24 * time.Hour

// SpanDays returns the inclusive number of calendar days covered by
// [start, end]. start == end yields 1. Callers are expected to pass
// start <= end; a reversed range yields a non-positive count.
func SpanDays(start, end time.Time) int {
	return int(end.Sub(start)/day) + 1
}

// DaysUntil returns the whole days between from and to, floored, so an
// expiry that passed earlier today counts as -1, never 0. Negative
// whenever to is in the past relative to from.
func DaysUntil(from, to time.Time) int {
	d := to.Sub(from)
	n := int(d / day)
	if d%day < 0 {
		n--
	}
	return n
}

// MonthsElapsed returns the whole calendar months between from and to
// using calendar month steps, not day-count division. A month-end anchor
// clamps: one month after Jan 31 is the last day of February, so Jan 31
// to Mar 1 is a month and a day. Any positive leftover rounds up one
// month, so a partial month counts.
func MonthsElapsed(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if addMonthsClamped(from, months).After(to) {
		months--
	}
	if addMonthsClamped(from, months).Before(to) {
		months++
	}
	return months
}

// addMonthsClamped shifts t by whole months, clamping the day-of-month
// to the target month's length instead of normalizing past it the way
// AddDate does (Jan 31 + 1 month is Feb 28, not Mar 3).
func addMonthsClamped(t time.Time, months int) time.Time {
	m := int(t.Month()) + months
	y := t.Year() + (m-1)/12
	m = (m-1)%12 + 1

	d := t.Day()
	if last := daysIn(y, time.Month(m)); d > last {
		d = last
	}
	return time.Date(y, time.Month(m), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// expiry text on vehicle documents arrives in whatever format the clerk
// typed; these are the shapes seen in production data
var flexibleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"01-02-2006",
}

// ParseFlexibleDate parses a date string in any of the accepted formats,
// normalized to UTC. Returns the zero time and false when nothing matches.
func ParseFlexibleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range flexibleLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
