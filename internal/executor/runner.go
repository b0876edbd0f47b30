package executor

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	isatty "github.com/mattn/go-isatty"

	"github.com/dshills/aish/internal/parse"
	"github.com/dshills/aish/internal/term"
)

// Programs that expect a real controlling terminal and get the PTY
// strategy instead of tee capture.
var defaultInteractive = []string{
	"vi", "vim", "nvim", "nano", "emacs",
	"less", "more", "man",
	"top", "htop", "btop",
	"ssh", "tmux", "screen",
	"fzf", "watch",
}

// Runner executes parsed pipelines.
//
// Stdout and Stderr are the live-echo sinks (normally the real
// terminal); TTY is the real terminal used for raw mode, keystroke
// forwarding, and size queries in the PTY strategy. The zero value is
// not usable; construct with NewRunner.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	TTY    *os.File

	// LiveEcho mirrors captured output to Stdout/Stderr as it
	// arrives. Disabled automatically when stdout is not a terminal.
	LiveEcho bool

	interactive map[string]struct{}
}

// NewRunner creates a runner wired to the process's terminal.
func NewRunner() *Runner {
	r := &Runner{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		TTY:         os.Stdin,
		LiveEcho:    isatty.IsTerminal(os.Stdout.Fd()),
		interactive: make(map[string]struct{}),
	}
	for _, name := range defaultInteractive {
		r.interactive[name] = struct{}{}
	}
	return r
}

// SetInteractive marks or unmarks a program as needing the PTY
// strategy.
func (r *Runner) SetInteractive(program string, on bool) {
	if on {
		r.interactive[program] = struct{}{}
	} else {
		delete(r.interactive, program)
	}
}

// Run executes the pipeline and blocks until it completes. Single
// commands known to need a real terminal take the PTY strategy;
// everything else takes tee capture.
func (r *Runner) Run(p *parse.Pipeline) Result {
	if len(p.Stages) == 0 {
		return OK("")
	}
	if r.wantsPTY(p) {
		return r.runInteractive(p.First())
	}
	return r.runTee(p)
}

func (r *Runner) wantsPTY(p *parse.Pipeline) bool {
	if len(p.Stages) != 1 || len(p.First().Redirects) != 0 {
		return false
	}
	if r.TTY == nil || !term.IsTerminal(int(r.TTY.Fd())) {
		return false
	}
	_, ok := r.interactive[p.First().Program]
	return ok
}

// runTee spawns every stage connected stage-to-stage by OS pipes, with
// the last stage's stdout and all stderr teed through relay
// goroutines into capture buffers.
func (r *Runner) runTee(p *parse.Pipeline) Result {
	n := len(p.Stages)
	cmds := make([]*exec.Cmd, n)

	// parentFiles are fds the parent must close once children hold
	// their own copies (or on any early error).
	var parentFiles []*os.File
	closeParentFiles := func() {
		for _, f := range parentFiles {
			f.Close()
		}
		parentFiles = nil
	}

	outR, outW, err := os.Pipe()
	if err != nil {
		return Errorf(1, "pipe: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		outR.Close()
		outW.Close()
		return Errorf(1, "pipe: %v", err)
	}
	parentFiles = append(parentFiles, outW, errW)

	fail := func(res Result) Result {
		closeParentFiles()
		for _, cmd := range cmds {
			if cmd != nil && cmd.Process != nil {
				_ = cmd.Process.Kill()
				_ = cmd.Wait()
			}
		}
		outR.Close()
		errR.Close()
		return res
	}

	// Wire each stage.
	var nextStdin *os.File
	for i := range p.Stages {
		stage := &p.Stages[i]
		first, last := i == 0, i == n-1

		files, redirErr := openRedirects(stage, first, last)
		if redirErr != nil {
			return fail(*redirErr)
		}
		if files.stdin != nil {
			parentFiles = append(parentFiles, files.stdin)
		}
		if files.stdout != nil {
			parentFiles = append(parentFiles, files.stdout)
		}

		cmd := exec.Command(stage.Program, stage.Args...)
		cmd.Stderr = errW

		switch {
		case files.stdin != nil:
			cmd.Stdin = files.stdin
		case first:
			cmd.Stdin = os.Stdin
		default:
			cmd.Stdin = nextStdin
		}

		switch {
		case files.stdout != nil:
			cmd.Stdout = files.stdout
		case last:
			cmd.Stdout = outW
		default:
			pr, pw, perr := os.Pipe()
			if perr != nil {
				return fail(Errorf(1, "pipe: %v", perr))
			}
			parentFiles = append(parentFiles, pr, pw)
			cmd.Stdout = pw
			nextStdin = pr
		}

		cmds[i] = cmd
	}

	// Spawn all stages.
	for i, cmd := range cmds {
		if err := cmd.Start(); err != nil {
			return fail(spawnResult(p.Stages[i].Program, err))
		}
	}

	// Children hold their own fds now; drop the parent's so relays
	// see EOF when the children exit.
	closeParentFiles()

	var outBuf, errBuf bytes.Buffer
	liveOut, liveErr := r.Stdout, r.Stderr
	if !r.LiveEcho {
		liveOut, liveErr = nil, nil
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		relay(outR, liveOut, &outBuf)
	}()
	go func() {
		defer wg.Done()
		relay(errR, liveErr, &errBuf)
	}()

	exit := 0
	for _, cmd := range cmds {
		// The pipeline's status is the last stage's status.
		exit = exitCode(cmd.Wait())
	}

	wg.Wait()
	outR.Close()
	errR.Close()

	return Result{
		Stdout:   outBuf.String(),
		Stderr:   errBuf.String(),
		ExitCode: exit,
		Echoed:   r.LiveEcho,
	}
}

// exitCode extracts a shell-style status from a Wait error: 0 on
// success, the child's code on normal exit, 128+signal when killed.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if ws, ok := ee.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal())
		}
		return ee.ExitCode()
	}
	return 1
}
