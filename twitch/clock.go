package twitch

import "time"

// Clock measures elapsed time for the session's handshake timeouts.  Now
// reports monotonic seconds; the origin is arbitrary but fixed per clock.
// A session without a clock enforces no timeouts.
type Clock interface {
	Now() float64
}

// SystemClock is a Clock backed by the runtime's monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a SystemClock whose origin is the moment of the
// call.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}
