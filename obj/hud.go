package obj

import (
	"fmt"
	"time"
)

// FormatElapsed renders d as mm:ss.t with tenths truncated.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	total := ms / 1000
	return fmt.Sprintf("%02d:%02d.%d", total/60, total%60, (ms%1000)/100)
}

// RunTimer measures a run. It starts on the first Update and stops for good
// when Stop is called.
type RunTimer struct {
	started bool
	stopped bool
	start   time.Duration
	elapsed time.Duration
}

func (rt *RunTimer) Update(now time.Duration) {
	if rt == nil || rt.stopped {
		return
	}
	if !rt.started {
		rt.started = true
		rt.start = now
	}
	rt.elapsed = now - rt.start
}

// Stop freezes the elapsed time.
func (rt *RunTimer) Stop() {
	if rt == nil {
		return
	}
	rt.stopped = true
}

// Restart clears the timer so the next Update starts a new run.
func (rt *RunTimer) Restart() {
	if rt == nil {
		return
	}
	*rt = RunTimer{}
}

func (rt *RunTimer) Elapsed() time.Duration {
	if rt == nil {
		return 0
	}
	return rt.elapsed
}

func (rt *RunTimer) String() string { return FormatElapsed(rt.Elapsed()) }
