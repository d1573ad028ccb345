package sched

import "fmt"

// clock is the simulated time source. It only moves forward, in increments
// chosen by the running scheduling step; there is no wall-clock component.
type clock struct {
	now int64
}

func newClock(start int64) *clock {
	return &clock{now: start}
}

// Now returns the current simulated time.
func (c *clock) Now() int64 {
	return c.now
}

// Advance moves the clock forward by an execution slice.
func (c *clock) Advance(d int64) {
	if d < 0 {
		panic(fmt.Sprintf("sched: clock advanced by negative slice %d", d))
	}
	c.now += d
}

// JumpTo skips the clock over an idle gap to the next arrival.
func (c *clock) JumpTo(t int64) {
	if t < c.now {
		panic(fmt.Sprintf("sched: clock jump backwards from %d to %d", c.now, t))
	}
	c.now = t
}
