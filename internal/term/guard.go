package term

import (
	"sync"

	"golang.org/x/term"
)

// StateGuard snapshots terminal attributes at construction and
// restores them exactly once, no matter how many times Restore is
// called or from which exit path. Typical use:
//
//	guard, err := term.NewStateGuard(int(os.Stdin.Fd()))
//	if err != nil { ... }
//	defer guard.Restore()
//	if err := guard.Raw(); err != nil { ... }
//
// A StateGuard is never shared between goroutines.
type StateGuard struct {
	fd    int
	saved *term.State
	once  sync.Once
}

// NewStateGuard captures the current attributes of fd.
func NewStateGuard(fd int) (*StateGuard, error) {
	saved, err := term.GetState(fd)
	if err != nil {
		return nil, err
	}
	return &StateGuard{fd: fd, saved: saved}, nil
}

// Raw switches the terminal into raw mode: no line buffering, no echo,
// keystrokes delivered as typed.
func (g *StateGuard) Raw() error {
	_, err := term.MakeRaw(g.fd)
	return err
}

// Restore puts back the attributes captured at construction. Safe to
// call more than once; only the first call takes effect.
func (g *StateGuard) Restore() {
	g.once.Do(func() {
		_ = term.Restore(g.fd, g.saved)
	})
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// Size returns the terminal's column and row count.
func Size(fd int) (cols, rows int, err error) {
	return term.GetSize(fd)
}
