package engine

import (
	"time"

	"cloud.google.com/go/civil"
)

// Today returns the calendar date of now as seen in loc.
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.Local
	}
	return civil.DateOf(now.In(loc))
}

// DaysBetween returns the number of whole calendar days from a to b. It is
// negative when b is before a.
func DaysBetween(a, b civil.Date) int {
	return b.DaysSince(a)
}
