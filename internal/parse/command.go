package parse

import "strings"

// RedirectKind identifies the direction and mode of a redirection.
type RedirectKind int

const (
	// RedirectStdout truncates or creates the target file (">").
	RedirectStdout RedirectKind = iota
	// RedirectAppend appends to or creates the target file (">>").
	RedirectAppend
	// RedirectStdin reads standard input from the target file ("<").
	RedirectStdin
)

// String returns the shell operator for the redirect kind.
func (k RedirectKind) String() string {
	switch k {
	case RedirectStdout:
		return ">"
	case RedirectAppend:
		return ">>"
	case RedirectStdin:
		return "<"
	default:
		return "?"
	}
}

// Redirect is a single file redirection attached to a command.
// It is immutable once parsed.
type Redirect struct {
	Kind RedirectKind
	Path string
}

// SimpleCommand is one stage of a pipeline: a program, its arguments,
// and any file redirections found in the stage.
//
// Program is always non-empty and is logically argv[0]; it is stored
// separately from Args for dispatch convenience.
type SimpleCommand struct {
	Program   string
	Args      []string
	Redirects []Redirect
}

// Argv returns the full argument vector including the program name.
func (c *SimpleCommand) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Program)
	argv = append(argv, c.Args...)
	return argv
}

// StdinRedirect returns the last "<" redirect, if any.
func (c *SimpleCommand) StdinRedirect() (Redirect, bool) {
	for i := len(c.Redirects) - 1; i >= 0; i-- {
		if c.Redirects[i].Kind == RedirectStdin {
			return c.Redirects[i], true
		}
	}
	return Redirect{}, false
}

// StdoutRedirect returns the last ">" or ">>" redirect, if any.
func (c *SimpleCommand) StdoutRedirect() (Redirect, bool) {
	for i := len(c.Redirects) - 1; i >= 0; i-- {
		if c.Redirects[i].Kind != RedirectStdin {
			return c.Redirects[i], true
		}
	}
	return Redirect{}, false
}

// Pipeline is a non-empty sequence of simple commands. Stage i's
// stdout conceptually feeds stage i+1's stdin; actual pipe wiring only
// materializes when there are two or more stages.
type Pipeline struct {
	Stages []SimpleCommand
}

// First returns the first stage. The parser guarantees at least one.
func (p *Pipeline) First() *SimpleCommand {
	return &p.Stages[0]
}

// Last returns the last stage.
func (p *Pipeline) Last() *SimpleCommand {
	return &p.Stages[len(p.Stages)-1]
}

// String renders the pipeline in shell syntax, for diagnostics.
func (p *Pipeline) String() string {
	var b strings.Builder
	for i, stage := range p.Stages {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(stage.Program)
		for _, a := range stage.Args {
			b.WriteByte(' ')
			b.WriteString(a)
		}
		for _, r := range stage.Redirects {
			b.WriteByte(' ')
			b.WriteString(r.Kind.String())
			b.WriteByte(' ')
			b.WriteString(r.Path)
		}
	}
	return b.String()
}
