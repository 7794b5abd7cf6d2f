package host

import "time"

// Clock reports the current animation time in milliseconds.
type Clock interface {
	NowMillis() int64
}

// SystemClock is a monotonic clock anchored at its creation.
type SystemClock struct {
	origin time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

func (c *SystemClock) NowMillis() int64 {
	return time.Since(c.origin).Milliseconds()
}

// ManualClock only moves when told to. Tests and scenario replays use it to
// step animations frame by frame.
type ManualClock struct {
	now int64
}

func NewManualClock(start int64) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) NowMillis() int64 {
	return c.now
}

// Advance moves the clock forward by ms. Negative values are ignored.
func (c *ManualClock) Advance(ms int64) {
	if ms > 0 {
		c.now += ms
	}
}

func (c *ManualClock) Set(ms int64) {
	c.now = ms
}
