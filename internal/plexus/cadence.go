package plexus

import "time"

// Cadence fires at a fixed interval of accumulated elapsed time,
// independent of the frame rate.
type Cadence struct {
	Interval time.Duration

	elapsed time.Duration
}

// NewCadence returns a cadence firing every interval.
func NewCadence(interval time.Duration) *Cadence {
	return &Cadence{Interval: interval}
}

// Advance adds dt and reports whether the interval elapsed. It fires at
// most once per call; time beyond a whole number of intervals carries
// over, anything more is dropped so a stalled frame does not cause a burst.
func (c *Cadence) Advance(dt time.Duration) bool {
	if dt > 0 {
		c.elapsed += dt
	}
	if c.Interval <= 0 || c.elapsed < c.Interval {
		return false
	}
	c.elapsed %= c.Interval
	return true
}
