// Package term owns the shell's interaction with the controlling
// terminal and with pseudo-terminals.
//
// It provides:
//
//   - StateGuard: scoped raw-mode entry with restore-exactly-once
//     semantics on every exit path
//   - PTY: a pseudo-terminal pair attached to a child process, sized
//     to the real terminal, with window-size change propagation
//   - AltScreenScanner: streaming detection of the alternate-screen
//     enable escape sequence across chunk boundaries
//   - WaitReadable: readiness polling used by the keystroke
//     forwarding loop so it can also observe shutdown
//
// The terminal's attribute state is treated as a single exclusively
// owned resource: the shell processes one line at a time, so at most
// one StateGuard is live at any moment.
package term
