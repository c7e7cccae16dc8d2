package obj

import (
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00.0"},
		{99 * time.Millisecond, "00:00.0"},
		{1234 * time.Millisecond, "00:01.2"},
		{59*time.Second + 999*time.Millisecond, "00:59.9"},
		{61*time.Second + 500*time.Millisecond, "01:01.5"},
		{-time.Second, "00:00.0"},
	}
	for _, c := range cases {
		if got := FormatElapsed(c.in); got != c.want {
			t.Fatalf("FormatElapsed(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRunTimer(t *testing.T) {
	var rt RunTimer
	rt.Update(5 * time.Second)
	rt.Update(7 * time.Second)
	if rt.Elapsed() != 2*time.Second {
		t.Fatalf("elapsed = %v, want 2s", rt.Elapsed())
	}
	rt.Stop()
	rt.Update(30 * time.Second)
	if rt.String() != "00:02.0" {
		t.Fatalf("stopped timer moved: %s", rt.String())
	}
	rt.Restart()
	rt.Update(40 * time.Second)
	if rt.Elapsed() != 0 {
		t.Fatalf("restarted timer should start from zero")
	}
}
