package classify

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce batches bursts of filesystem events (a package
// manager installing many binaries) into a single index reload.
const defaultDebounce = 500 * time.Millisecond

// Watcher keeps a PathIndex current by watching every directory on
// $PATH for created, removed, or renamed entries. The explicit
// Reload after an export PATH=... still applies; the watcher covers
// files changing inside directories already on the path.
type Watcher struct {
	index    *PathIndex
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	pending *time.Timer
	closed  bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher starts watching the directories currently on $PATH.
// Directories that cannot be watched (missing, permissions) are
// skipped.
func NewWatcher(index *PathIndex) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		index:    index,
		fsw:      fsw,
		debounce: defaultDebounce,
		done:     make(chan struct{}),
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		_ = fsw.Add(dir)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Rewatch replaces the watched directory set after $PATH changed.
func (w *Watcher) Rewatch() {
	for _, dir := range w.fsw.WatchList() {
		_ = w.fsw.Remove(dir)
	}
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		_ = w.fsw.Add(dir)
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.scheduleReload()
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the index simply goes
			// stale until the next explicit reload.
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.index.Reload)
}
