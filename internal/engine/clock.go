package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The engine uses it to anchor "upcoming" event queries and to compute
// default reference dates when a calendar has no history yet.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
