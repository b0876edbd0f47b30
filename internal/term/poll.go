//go:build unix

package term

import (
	"time"

	"golang.org/x/sys/unix"
)

// WaitReadable blocks until fd has data to read or the timeout
// elapses. It returns true only when data is ready. EINTR is treated
// as a timeout so callers simply loop.
//
// The keystroke forwarding loop uses this with a short timeout so it
// can also observe its shutdown channel and terminal resizes without a
// dedicated blocking read per signal source.
func WaitReadable(fd int, timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err == unix.EINTR {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
}
