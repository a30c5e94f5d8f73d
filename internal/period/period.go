// Package period computes the calendar ranges used to bucket events.
//
// Every range is half-open: Start is inclusive, End exclusive. Calendar
// arithmetic goes through time.Date so days stay aligned to local midnight
// across DST transitions.
package period

import "time"

// DateKey is the layout of a calendar-day key (zero-padded, sorts lexically).
const DateKey = "2006-01-02"

// Range is the half-open interval [Start, End).
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether Start <= t < End.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Days returns the number of calendar days the range spans.
func (r Range) Days() int {
	n := 0
	for d := r.Start; d.Before(r.End); d = AddDays(d, 1) {
		n++
	}
	return n
}

// Midnight returns 00:00 of t's calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// AddDays moves a midnight forward by n calendar days, keeping it at midnight.
func AddDays(midnight time.Time, n int) time.Time {
	return time.Date(midnight.Year(), midnight.Month(), midnight.Day()+n, 0, 0, 0, 0, midnight.Location())
}

// Key formats t's calendar day in loc.
func Key(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateKey)
}

// Today is [midnight(now), midnight(now)+1 day).
func Today(now time.Time, loc *time.Location) Range {
	start := Midnight(now, loc)
	return Range{Start: start, End: AddDays(start, 1)}
}

// Week starts on Monday 00:00 and lasts seven calendar days.
func Week(now time.Time, loc *time.Location) Range {
	wd := int(now.In(loc).Weekday()) // Sunday = 0
	start := AddDays(Midnight(now, loc), -((wd + 6) % 7))
	return Range{Start: start, End: AddDays(start, 7)}
}

// Month runs from the first of now's month to the first of the next.
func Month(now time.Time, loc *time.Location) Range {
	t := now.In(loc)
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return Range{Start: start, End: time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, loc)}
}

// DaysInMonth returns the day count of t's month in loc.
func DaysInMonth(t time.Time, loc *time.Location) int {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, loc).Day()
}
