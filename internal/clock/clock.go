// Package clock supplies "now" to everything that buckets events by date,
// so tests can pin the calendar.
package clock

import "time"

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// System is the wall clock.
var System Clock = Func(time.Now)

// Fixed always reports t.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}
