package common

import (
	"testing"
	"time"
)

func TestPausableClock(t *testing.T) {
	src := NewManualClock(5 * time.Second)
	c := NewPausableClock(src)

	steps := []struct {
		name    string
		advance time.Duration
		pause   bool
		want    time.Duration
	}{
		{"running", time.Second, false, 6 * time.Second},
		{"paused", 3 * time.Second, true, 6 * time.Second},
		{"still_paused", 2 * time.Second, true, 6 * time.Second},
		{"resumed", time.Second, false, 7 * time.Second},
		{"pause_again", 10 * time.Second, true, 7 * time.Second},
		{"resume_again", 500 * time.Millisecond, false, 7500 * time.Millisecond},
	}
	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			c.SetPaused(s.pause)
			src.Advance(s.advance)
			if got := c.Now(); got != s.want {
				t.Fatalf("Now() = %v, want %v", got, s.want)
			}
		})
	}
}
