package common

import "time"

// Clock reports the time elapsed since the game started. All timed effects
// compare against it instead of counting frames.
type Clock interface {
	Now() time.Duration
}

type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() time.Duration {
	if c == nil {
		return 0
	}
	return time.Since(c.start)
}

// ManualClock only moves when told to.
type ManualClock struct {
	now time.Duration
}

func NewManualClock(start time.Duration) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Duration { return c.now }

func (c *ManualClock) Advance(d time.Duration) time.Duration {
	c.now += d
	return c.now
}

func (c *ManualClock) Set(t time.Duration) { c.now = t }

// PausableClock follows another clock but stands still while paused, so
// timed effects do not run out behind a pause menu.
type PausableClock struct {
	src      Clock
	paused   bool
	pausedAt time.Duration
	offset   time.Duration
}

func NewPausableClock(src Clock) *PausableClock {
	return &PausableClock{src: src}
}

func (c *PausableClock) Now() time.Duration {
	if c.paused {
		return c.pausedAt - c.offset
	}
	return c.src.Now() - c.offset
}

func (c *PausableClock) SetPaused(paused bool) {
	if paused == c.paused {
		return
	}
	now := c.src.Now()
	if paused {
		c.pausedAt = now
	} else {
		c.offset += now - c.pausedAt
	}
	c.paused = paused
}

func (c *PausableClock) Paused() bool { return c.paused }
