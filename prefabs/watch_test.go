package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsWatchedFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"prefabs/movement.yaml", true},
		{"prefabs/player.YML", true},
		{"prefabs/scripts/climb.tengo", true},
		{"levels/playground.json", true},
		{"levels/cave.tmx", true},
		{"prefabs/scripts/old.lua", false},
		{"prefabs/movement.yaml.swp", false},
		{"README.md", false},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			if got := IsWatchedFile(c.path); got != c.want {
				t.Fatalf("IsWatchedFile(%q) = %v, want %v", c.path, got, c.want)
			}
		})
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	ignored := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(ignored, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	path := filepath.Join(dir, "movement.yaml")
	if err := os.WriteFile(path, []byte("name: test\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-w.Events:
			if got == ignored {
				t.Fatalf("non-watched file reported: %s", got)
			}
			if got == path {
				return
			}
		case err := <-w.Errors:
			t.Fatalf("watcher error: %v", err)
		case <-timeout:
			t.Fatalf("no event for %s", path)
		}
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	// run closes the channels once it exits
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatalf("unexpected event after close")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("events channel not closed")
	}
}
