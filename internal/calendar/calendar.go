// Package calendar implements calendar-day arithmetic over time.Time values.
//
// All functions interpret instants in a caller-supplied *time.Location, so a
// "day" is a local calendar date, not a 24-hour interval. Day addition goes
// through time.Date normalisation, which keeps results at local midnight
// across daylight-saving transitions. A nil location means UTC.
package calendar

import "time"

// StartOfDay returns midnight of the calendar day containing t, in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	loc = orUTC(loc)
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// AddDays returns the same wall-clock time n calendar days after day,
// in day's location. n may be negative.
func AddDays(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	hh, mm, ss := day.Clock()
	return time.Date(y, m, d+n, hh, mm, ss, day.Nanosecond(), day.Location())
}

// DaysBetween returns the number of whole calendar days from start's date to
// end's date in loc. Times of day are ignored, so 23:00 to 01:00 the next
// morning is one day. The result is negative when end's date is before
// start's date.
func DaysBetween(start, end time.Time, loc *time.Location) int {
	loc = orUTC(loc)
	sy, sm, sd := start.In(loc).Date()
	ey, em, ed := end.In(loc).Date()
	// Counting in UTC avoids the 23h/25h days a DST location would produce.
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	loc = orUTC(loc)
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// Span returns midnight of every calendar day from start's date to end's date
// inclusive, in loc. It returns nil when end's date is before start's date.
func Span(start, end time.Time, loc *time.Location) []time.Time {
	n := DaysBetween(start, end, loc)
	if n < 0 {
		return nil
	}
	first := StartOfDay(start, loc)
	days := make([]time.Time, 0, n+1)
	for idx := 0; idx <= n; idx++ {
		days = append(days, AddDays(first, idx))
	}
	return days
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
