// Package clock lets services read the current time through an injectable
// interface so date-dependent rules such as "upcoming" can be tested.
package clock

import (
	"time"

	"github.com/Jana57473/community-event-portal/internal/model"
)

// Clock reports the current instant in UTC.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock.
type Func func() time.Time

// Now calls f and normalises the result to UTC.
func (f Func) Now() time.Time {
	return f().UTC()
}

// System reads the wall clock.
var System Clock = Func(time.Now)

// Fixed returns a clock stuck at t.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}

// Today returns the calendar date c is currently on.
func Today(c Clock) model.Date {
	return model.NewDate(c.Now())
}
