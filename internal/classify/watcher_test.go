package classify

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnCreate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PATH", dir)

	idx := NewPathIndex()
	if idx.Has("newtool") {
		t.Fatal("index should start empty")
	}

	w, err := NewWatcher(idx)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Close()
	w.debounce = 20 * time.Millisecond

	if err := os.WriteFile(filepath.Join(dir, "newtool"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if idx.Has("newtool") {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("index was not reloaded after file creation")
}

func TestWatcher_CloseIdempotent(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	w, err := NewWatcher(NewPathIndex())
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
}
