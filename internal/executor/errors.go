package executor

import (
	"errors"
	"os"
	"os/exec"
)

// Exit codes for spawn failures, following shell convention.
const (
	// ExitNotFound is returned when the program does not exist.
	ExitNotFound = 127
	// ExitNotExecutable is returned when the program exists but
	// cannot be executed.
	ExitNotExecutable = 126
)

// spawnResult maps a Start() failure onto a shell diagnostic,
// distinguishing not-found and permission-denied from generic OS
// errors.
func spawnResult(program string, err error) Result {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return Errorf(ExitNotFound, "%s: command not found", program)
	case errors.Is(err, os.ErrPermission):
		return Errorf(ExitNotExecutable, "%s: permission denied", program)
	default:
		return Errorf(1, "%s: %v", program, err)
	}
}
