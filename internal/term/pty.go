package term

import (
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
)

// resizePollInterval is how often the resize watcher compares the real
// terminal's size against the PTY's.
const resizePollInterval = 100 * time.Millisecond

// PTY wraps the master side of a pseudo-terminal pair whose slave side
// is the controlling terminal of a child process.
type PTY struct {
	master *os.File
	tty    *os.File // the real terminal, used for size queries
	rows   uint16
	cols   uint16
}

// StartPTY spawns cmd attached to a fresh pseudo-terminal sized to the
// real terminal tty (normally os.Stdin). Falls back to 80x24 when the
// size cannot be determined.
func StartPTY(cmd *exec.Cmd, tty *os.File) (*PTY, error) {
	size, err := pty.GetsizeFull(tty)
	if err != nil {
		size = &pty.Winsize{Rows: 24, Cols: 80}
	}

	master, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return nil, err
	}

	return &PTY{
		master: master,
		tty:    tty,
		rows:   size.Rows,
		cols:   size.Cols,
	}, nil
}

// Read reads child output from the master side.
func (p *PTY) Read(buf []byte) (int, error) {
	return p.master.Read(buf)
}

// Write forwards keystrokes to the child.
func (p *PTY) Write(data []byte) (int, error) {
	return p.master.Write(data)
}

// Close closes the master side. The child sees EOF/SIGHUP per the
// platform's line discipline.
func (p *PTY) Close() error {
	return p.master.Close()
}

// SyncSize propagates the real terminal's current size to the PTY if
// it changed since the last call. The kernel delivers SIGWINCH to the
// child's process group as part of the resize ioctl.
func (p *PTY) SyncSize() error {
	size, err := pty.GetsizeFull(p.tty)
	if err != nil {
		return err
	}
	if size.Rows == p.rows && size.Cols == p.cols {
		return nil
	}
	if err := pty.Setsize(p.master, size); err != nil {
		return err
	}
	p.rows = size.Rows
	p.cols = size.Cols
	return nil
}

// WatchResize polls the real terminal size every 100ms and propagates
// changes until done is closed. Runs in its own goroutine:
//
//	go ptyPair.WatchResize(done)
func (p *PTY) WatchResize(done <-chan struct{}) {
	ticker := time.NewTicker(resizePollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			_ = p.SyncSize()
		}
	}
}
