// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"sync/atomic"
	"time"
)

// DefaultClockTime is the start of a FakeClock created from the zero time.
var DefaultClockTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is a time source moved only by the test. Its Now method matches
// the func() time.Time hooks of the generation metadata writer and the
// orchestrator.
type FakeClock struct {
	nanos atomic.Int64
}

// NewFakeClock creates a FakeClock at initial, or at DefaultClockTime when
// initial is zero.
func NewFakeClock(initial time.Time) *FakeClock {
	if initial.IsZero() {
		initial = DefaultClockTime
	}
	c := &FakeClock{}
	c.nanos.Store(initial.UnixNano())
	return c
}

// Now returns the fake time in UTC.
func (c *FakeClock) Now() time.Time {
	return time.Unix(0, c.nanos.Load()).UTC()
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.nanos.Add(int64(d))
}

// Set moves the clock to t.
func (c *FakeClock) Set(t time.Time) {
	c.nanos.Store(t.UnixNano())
}
