package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherNilPoll(t *testing.T) {
	var w *Watcher
	if got := w.Poll(); got != nil {
		t.Fatalf("nil watcher polled %v", got)
	}
}

func TestWatcherReportsSpecEdit(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "player.yaml")
	if err := os.WriteFile(path, []byte("name: red\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, c := range w.Poll() {
			if c.Path == path && c.Kind == ChangeSpec {
				return
			}
			if c.Kind == 0 {
				t.Fatalf("unclassified change %+v", c)
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("no change reported for %s", path)
}

func TestWatcherCloseClosesEvents(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("events channel still open")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
