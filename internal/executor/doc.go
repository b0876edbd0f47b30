// Package executor spawns external processes for parsed pipelines and
// collects their output and exit status into a single Result.
//
// Two execution strategies exist:
//
//   - Tee capture (the default): children write into OS pipes; one
//     relay goroutine per stream copies chunks to the real terminal
//     for live feedback while accumulating them in a buffer.
//   - Interactive PTY: full-screen or signal-sensitive programs get a
//     real pseudo-terminal. Keystrokes are forwarded to the PTY
//     master, window-size changes are propagated every 100ms, and the
//     output relay watches for the alternate-screen enable sequence —
//     once seen, the capture buffer stops growing while live mirroring
//     continues.
//
// Relay goroutines are created fresh per invocation and joined before
// Run returns; no worker state outlives a command. A read or write
// failure mid-stream ends that relay's loop without disturbing the
// sibling relay or the wait for child exit.
package executor
