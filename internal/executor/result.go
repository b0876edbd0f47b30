package executor

import "fmt"

// shellName prefixes every diagnostic, mirroring conventional shell
// error output ("aish: cmd: reason").
const shellName = "aish"

// Control tells the REPL what to do after a result.
type Control int

const (
	// ControlContinue keeps the session running.
	ControlContinue Control = iota
	// ControlExit ends the session.
	ControlExit
)

// Result is the normalized outcome of one executed line or builtin
// invocation. Exactly one Result is produced per execution; the caller
// uses it to update prompt state and hands it to the history
// collaborator.
//
// When UsedAltScreen is true, Stdout is not meaningful text (the child
// drew a full-screen interface) and must not be persisted as context.
type Result struct {
	Stdout        string
	Stderr        string
	ExitCode      int
	Control       Control
	UsedAltScreen bool

	// Echoed is set when a relay already mirrored the output to the
	// real terminal, so the REPL must not print Stdout/Stderr again.
	Echoed bool
}

// OK returns a successful result carrying stdout.
func OK(stdout string) Result {
	return Result{Stdout: stdout}
}

// Errorf returns a failed result with a shell-prefixed diagnostic on
// stderr. Diagnostics never go to stdout, so capturing callers do not
// mistake them for command output.
func Errorf(exitCode int, format string, args ...any) Result {
	return Result{
		Stderr:   fmt.Sprintf(shellName+": "+format+"\n", args...),
		ExitCode: exitCode,
	}
}
