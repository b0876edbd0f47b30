package dispatch

import (
	"strings"

	"github.com/dshills/aish/internal/executor"
	"github.com/dshills/aish/internal/parse"
)

// Result is the normalized command outcome, shared with the executor.
type Result = executor.Result

// Runner executes pipelines of external processes.
type Runner interface {
	Run(p *parse.Pipeline) Result
}

// History is the slice of the history collaborator the history
// builtin needs.
type History interface {
	Recent(n int) ([]string, error)
}

// Dispatcher resolves pipelines against the builtin table and defers
// the rest to the Runner.
type Dispatcher struct {
	registry *Registry
	runner   Runner
	aliases  *Aliases
	history  History

	// onPathChange is invoked after a builtin mutates $PATH so the
	// classifier index can be reloaded.
	onPathChange func()
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHistory wires the history collaborator for the history builtin.
func WithHistory(h History) Option {
	return func(d *Dispatcher) { d.history = h }
}

// WithPathChangeHook sets the callback run after $PATH mutations.
func WithPathChangeHook(fn func()) Option {
	return func(d *Dispatcher) { d.onPathChange = fn }
}

// New creates a dispatcher with the standard builtin table registered.
func New(runner Runner, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		runner:   runner,
		aliases:  NewAliases(),
	}
	for _, opt := range opts {
		opt(d)
	}
	registerBuiltins(d.registry)
	return d
}

// Registry exposes the builtin table, for plugins and the classifier's
// "is this a builtin" checks.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Aliases exposes the alias table.
func (d *Dispatcher) Aliases() *Aliases {
	return d.aliases
}

// Route executes a parsed pipeline and returns its result.
func (d *Dispatcher) Route(p *parse.Pipeline) Result {
	d.expandAliases(p)
	first := p.First()

	// Single stage without redirects: builtins run in-process.
	if len(p.Stages) == 1 && len(first.Redirects) == 0 {
		if fn := d.registry.Get(first.Program); fn != nil {
			return fn(d, first.Args)
		}
		return d.runner.Run(p)
	}

	// Builtin heading a multi-stage pipeline: run it synchronously,
	// short-circuit on failure, otherwise materialize its stdout as a
	// synthetic literal-echo stage feeding the real pipe. A head with
	// redirects goes to the executor like any other stage, so the
	// redirect is refused there instead of dropped here.
	if len(p.Stages) >= 2 && len(first.Redirects) == 0 {
		if fn := d.registry.Get(first.Program); fn != nil {
			res := fn(d, first.Args)
			if res.ExitCode != 0 {
				return res
			}
			stages := make([]parse.SimpleCommand, 0, len(p.Stages))
			stages = append(stages, literalEchoStage(res.Stdout))
			stages = append(stages, p.Stages[1:]...)
			return d.runner.Run(&parse.Pipeline{Stages: stages})
		}
	}

	return d.runner.Run(p)
}

// TryBuiltin attempts to execute line as a lone builtin invocation.
// It returns false without parsing the full pipeline when the first
// word is not a builtin name, so natural-language punctuation cannot
// produce spurious parse errors before AI routing.
func (d *Dispatcher) TryBuiltin(line string) (Result, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || !d.registry.Has(fields[0]) {
		return Result{}, false
	}
	p, err := parse.ParseLine(line)
	if err != nil {
		return executor.Errorf(1, "%v", err), true
	}
	return d.Route(p), true
}

// literalEchoStage builds a stage that prints exactly s to stdout.
func literalEchoStage(s string) parse.SimpleCommand {
	return parse.SimpleCommand{Program: "printf", Args: []string{"%s", s}}
}

// expandAliases replaces each stage's program token with its alias
// value's tokens. Expansion is non-recursive and skips stages whose
// program is a registered builtin.
func (d *Dispatcher) expandAliases(p *parse.Pipeline) {
	for i := range p.Stages {
		stage := &p.Stages[i]
		if d.registry.Has(stage.Program) {
			continue
		}
		value, ok := d.aliases.Get(stage.Program)
		if !ok {
			continue
		}
		tokens, err := parse.Tokenize(value)
		if err != nil || len(tokens) == 0 {
			continue
		}
		stage.Program = tokens[0]
		stage.Args = append(tokens[1:], stage.Args...)
	}
}
