package executor

import (
	"bytes"
	"os/exec"
	"sync"
	"time"

	"github.com/dshills/aish/internal/parse"
	"github.com/dshills/aish/internal/term"
)

// stdinPollTimeout is the readiness-poll interval for the keystroke
// forwarding loop. Short enough that the loop notices shutdown
// promptly, long enough to stay idle-cheap.
const stdinPollTimeout = 50 * time.Millisecond

// runInteractive executes a single command on a real pseudo-terminal.
//
// The real terminal goes raw for the duration; the guard restores its
// attributes on every exit path. Three goroutines run per session:
// keystroke forwarding (readiness-polled so it observes shutdown),
// output relay (with alternate-screen detection), and window-size
// propagation. The shutdown channel is created fresh per session so a
// signal from a previous command cannot leak in.
func (r *Runner) runInteractive(stage *parse.SimpleCommand) Result {
	guard, err := term.NewStateGuard(int(r.TTY.Fd()))
	if err != nil {
		return Errorf(1, "terminal: %v", err)
	}
	defer guard.Restore()

	cmd := exec.Command(stage.Program, stage.Args...)
	ptyPair, err := term.StartPTY(cmd, r.TTY)
	if err != nil {
		return spawnResult(stage.Program, err)
	}

	if err := guard.Raw(); err != nil {
		_ = ptyPair.Close()
		_ = cmd.Wait()
		return Errorf(1, "terminal: %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	var relayWG sync.WaitGroup

	// Window-size propagation.
	wg.Add(1)
	go func() {
		defer wg.Done()
		ptyPair.WatchResize(done)
	}()

	// Keystroke forwarding: poll so the loop also observes shutdown.
	wg.Add(1)
	go func() {
		defer wg.Done()
		fd := int(r.TTY.Fd())
		buf := make([]byte, 1024)
		for {
			select {
			case <-done:
				return
			default:
			}
			ready, perr := term.WaitReadable(fd, stdinPollTimeout)
			if perr != nil {
				return
			}
			if !ready {
				continue
			}
			n, rerr := r.TTY.Read(buf)
			if n > 0 {
				if _, werr := ptyPair.Write(buf[:n]); werr != nil {
					return
				}
			}
			if rerr != nil {
				return
			}
		}
	}()

	// Output relay. Live mirroring always; the capture buffer stops
	// growing once the child enables the alternate screen, since
	// everything after that is TUI redraw noise.
	var capture bytes.Buffer
	var scanner term.AltScreenScanner
	relayWG.Add(1)
	go func() {
		defer relayWG.Done()
		chunk := make([]byte, relayBufSize)
		for {
			n, rerr := ptyPair.Read(chunk)
			if n > 0 {
				_, _ = r.Stdout.Write(chunk[:n])
				if keep := scanner.Scan(chunk[:n]); keep > 0 {
					capture.Write(chunk[:n][:keep])
				}
			}
			if rerr != nil {
				// EIO here is the normal end-of-session signal on
				// Linux once the child exits.
				return
			}
		}
	}()

	waitErr := cmd.Wait()
	close(done)

	// Drain the relay before closing the master. A fast-exiting child
	// can leave its final output buffered in the PTY; closing first
	// would discard those bytes from both the live terminal and the
	// capture. The relay ends on its own once its read returns EIO.
	relayWG.Wait()
	_ = ptyPair.Close()
	wg.Wait()
	guard.Restore()

	return Result{
		Stdout:        capture.String(),
		ExitCode:      exitCode(waitErr),
		UsedAltScreen: scanner.Detected(),
		Echoed:        true,
	}
}
