package component

import "time"

// Deadline is a one-shot wall-clock timer. Times are offsets from game start
// as reported by common.Clock.
type Deadline struct {
	armed     bool
	expiresAt time.Duration
}

// Arm (re)starts the deadline so that it is active for d starting at now.
func (d *Deadline) Arm(now, dur time.Duration) {
	if d == nil {
		return
	}
	d.armed = true
	d.expiresAt = now + dur
}

func (d *Deadline) Disarm() {
	if d == nil {
		return
	}
	d.armed = false
	d.expiresAt = 0
}

// IsActive reports whether now falls in [armedAt, expiresAt).
func (d *Deadline) IsActive(now time.Duration) bool {
	return d != nil && d.armed && now < d.expiresAt
}

// Expired reports whether the deadline was armed and has run out. It stays
// true until Disarm is called, so callers revert their effect and disarm.
func (d *Deadline) Expired(now time.Duration) bool {
	return d != nil && d.armed && now >= d.expiresAt
}

func (d *Deadline) Armed() bool { return d != nil && d.armed }

// Remaining returns the time left, or 0 when inactive.
func (d *Deadline) Remaining(now time.Duration) time.Duration {
	if !d.IsActive(now) {
		return 0
	}
	return d.expiresAt - now
}

