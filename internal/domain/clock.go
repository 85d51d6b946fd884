// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package domain

import "time"

// Clock provides the current time. The booking core only consults the clock
// to compute generation horizons, so tests can pin it to a fixed instant.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock is a Clock frozen at a single instant, for tests.
type FixedClock struct {
	Time time.Time
}

// Now returns the frozen instant.
func (c FixedClock) Now() time.Time {
	return c.Time
}
