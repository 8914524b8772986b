// Package clock provides the wall-clock implementation of the Clock port.
package clock

import "time"

// SystemClock reads the system wall clock.
type SystemClock struct{}

// NewSystemClock creates a system clock.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns the current UTC time. Event timestamps are stored and shipped
// in UTC so ordering comparisons never depend on server time zones.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
