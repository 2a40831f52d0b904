package backdrop

import "time"

// Clock reports seconds elapsed since it started. Time-driven animation reads
// it once per frame.
type Clock interface {
	Elapsed() float64
}

// wallClock measures real time from its first Elapsed call.
type wallClock struct {
	start   time.Time
	started bool
	now     func() time.Time
}

func newWallClock() *wallClock {
	return &wallClock{now: time.Now}
}

func (c *wallClock) Elapsed() float64 {
	t := c.now()
	if !c.started {
		c.start = t
		c.started = true
	}
	return t.Sub(c.start).Seconds()
}

// ManualClock is a Clock advanced explicitly. Used for deterministic runs and
// tests.
type ManualClock struct {
	t float64
}

// Elapsed returns the current manual time.
func (c *ManualClock) Elapsed() float64 {
	return c.t
}

// Set sets the elapsed time in seconds.
func (c *ManualClock) Set(seconds float64) {
	c.t = seconds
}

// Advance moves the clock forward by dt seconds.
func (c *ManualClock) Advance(dt float64) {
	c.t += dt
}
