// Package clock supplies the time source for timed traversal windows.
//
// Production code uses System, which reads the runtime's monotonic clock.
// Tests use StepClock so elapsed durations are known in advance and reports
// can be compared byte-for-byte against golden files.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current instant.
//
// Implementations must be monotonic: a later call never returns an instant
// before an earlier one, so end.Sub(start) is never negative.
type Clock interface {
	Now() time.Time
}

// System reads time.Now, which carries a monotonic reading on every
// supported platform. Subtracting two System instants ignores wall-clock
// adjustments.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// Since returns the elapsed time between start and c.Now().
func Since(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}

// StepClock advances by a fixed schedule of steps on every call to Now.
//
// The first call returns the start instant. Each call after that returns the
// previous instant plus the next step in the schedule, cycling when the
// schedule is exhausted. A timed window that reads the clock twice therefore
// measures exactly one step.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu    sync.Mutex
	now   time.Time
	steps []time.Duration
	idx   int
	calls int
}

// NewStepClock creates a stepping clock. With no steps it advances by one
// microsecond per call. Negative steps are treated as zero to keep the clock
// monotonic.
func NewStepClock(start time.Time, steps ...time.Duration) *StepClock {
	if len(steps) == 0 {
		steps = []time.Duration{time.Microsecond}
	}
	s := make([]time.Duration, len(steps))
	for i, d := range steps {
		if d < 0 {
			d = 0
		}
		s[i] = d
	}
	return &StepClock{now: start, steps: s}
}

// Now returns the current instant and advances by the next step.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.steps[c.idx])
	c.idx = (c.idx + 1) % len(c.steps)
	c.calls++
	return t
}

// Calls reports how many times Now has been called.
func (c *StepClock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
