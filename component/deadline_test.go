package component

import (
	"testing"
	"time"
)

func TestDeadlineWindow(t *testing.T) {
	start := 10 * time.Second
	dur := 4000 * time.Millisecond

	var d Deadline
	d.Arm(start, dur)

	cases := []struct {
		name    string
		at      time.Duration
		active  bool
		expired bool
	}{
		{"at_arm", start, true, false},
		{"midway", start + 2*time.Second, true, false},
		{"last_ms", start + dur - time.Millisecond, true, false},
		{"at_expiry", start + dur, false, true},
		{"long_after", start + time.Minute, false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := d.IsActive(c.at); got != c.active {
				t.Fatalf("IsActive(%v) = %v, want %v", c.at, got, c.active)
			}
			if got := d.Expired(c.at); got != c.expired {
				t.Fatalf("Expired(%v) = %v, want %v", c.at, got, c.expired)
			}
		})
	}
}

func TestDeadlineDisarmAndRearm(t *testing.T) {
	var d Deadline
	if d.IsActive(0) || d.Expired(0) {
		t.Fatalf("zero deadline should be neither active nor expired")
	}

	d.Arm(0, time.Second)
	d.Disarm()
	if d.Expired(2 * time.Second) {
		t.Fatalf("disarmed deadline should not report expiry")
	}

	d.Arm(time.Second, time.Second)
	d.Arm(1500*time.Millisecond, time.Second)
	if !d.IsActive(2200 * time.Millisecond) {
		t.Fatalf("re-arming should extend the window")
	}
	if got := d.Remaining(2 * time.Second); got != 500*time.Millisecond {
		t.Fatalf("Remaining = %v, want 500ms", got)
	}

	var nilDeadline *Deadline
	if nilDeadline.IsActive(0) || nilDeadline.Expired(0) {
		t.Fatalf("nil deadline should be inert")
	}
}
