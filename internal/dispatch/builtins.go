package dispatch

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/aish/internal/executor"
)

func registerBuiltins(r *Registry) {
	r.Register("exit", "exit [code] - end the session", builtinExit)
	r.Register("cd", "cd [dir] - change the working directory", builtinCd)
	r.Register("pwd", "pwd - print the working directory", builtinPwd)
	r.Register("alias", "alias [name[=value]] - define or list aliases", builtinAlias)
	r.Register("unalias", "unalias name - remove an alias", builtinUnalias)
	r.Register("export", "export NAME=value - set an environment variable", builtinExport)
	r.Register("unset", "unset NAME - remove an environment variable", builtinUnset)
	r.Register("history", "history [n] - show recent commands", builtinHistory)
	r.Register("help", "help - list builtin commands", builtinHelp)
}

func builtinExit(_ *Dispatcher, args []string) Result {
	code := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return executor.Errorf(1, "exit: %s: numeric argument required", args[0])
		}
		code = n
	}
	return Result{ExitCode: code, Control: executor.ControlExit}
}

func builtinCd(_ *Dispatcher, args []string) Result {
	var target string
	switch len(args) {
	case 0:
		home, err := os.UserHomeDir()
		if err != nil {
			return executor.Errorf(1, "cd: %v", err)
		}
		target = home
	case 1:
		target = args[0]
	default:
		return executor.Errorf(1, "cd: too many arguments")
	}
	if err := os.Chdir(target); err != nil {
		return executor.Errorf(1, "cd: %s: %v", target, pathErrReason(err))
	}
	return Result{}
}

func builtinPwd(_ *Dispatcher, _ []string) Result {
	wd, err := os.Getwd()
	if err != nil {
		return executor.Errorf(1, "pwd: %v", err)
	}
	return executor.OK(wd + "\n")
}

func builtinAlias(d *Dispatcher, args []string) Result {
	if len(args) == 0 {
		var b strings.Builder
		for _, name := range d.aliases.Names() {
			value, _ := d.aliases.Get(name)
			fmt.Fprintf(&b, "alias %s='%s'\n", name, value)
		}
		return executor.OK(b.String())
	}

	var out strings.Builder
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if ok {
			d.aliases.Set(name, value)
			continue
		}
		v, found := d.aliases.Get(arg)
		if !found {
			return executor.Errorf(1, "alias: %s: not found", arg)
		}
		fmt.Fprintf(&out, "alias %s='%s'\n", arg, v)
	}
	return executor.OK(out.String())
}

func builtinUnalias(d *Dispatcher, args []string) Result {
	if len(args) != 1 {
		return executor.Errorf(1, "unalias: usage: unalias name")
	}
	if !d.aliases.Remove(args[0]) {
		return executor.Errorf(1, "unalias: %s: not found", args[0])
	}
	return Result{}
}

func builtinExport(d *Dispatcher, args []string) Result {
	if len(args) == 0 {
		return executor.Errorf(1, "export: usage: export NAME=value")
	}
	pathChanged := false
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return executor.Errorf(1, "export: %s: not a valid assignment", arg)
		}
		if err := os.Setenv(name, value); err != nil {
			return executor.Errorf(1, "export: %s: %v", name, err)
		}
		if name == "PATH" {
			pathChanged = true
		}
	}
	if pathChanged && d.onPathChange != nil {
		d.onPathChange()
	}
	return Result{}
}

func builtinUnset(d *Dispatcher, args []string) Result {
	if len(args) == 0 {
		return executor.Errorf(1, "unset: usage: unset NAME")
	}
	pathChanged := false
	for _, name := range args {
		if err := os.Unsetenv(name); err != nil {
			return executor.Errorf(1, "unset: %s: %v", name, err)
		}
		if name == "PATH" {
			pathChanged = true
		}
	}
	if pathChanged && d.onPathChange != nil {
		d.onPathChange()
	}
	return Result{}
}

func builtinHistory(d *Dispatcher, args []string) Result {
	if d.history == nil {
		return executor.Errorf(1, "history: no history store available")
	}
	n := 10
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return executor.Errorf(1, "history: %s: numeric argument required", args[0])
		}
		n = v
	}
	lines, err := d.history.Recent(n)
	if err != nil {
		return executor.Errorf(1, "history: %v", err)
	}
	var b strings.Builder
	// Oldest first, numbered like a conventional shell.
	for i := len(lines) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%5d  %s\n", len(lines)-i, lines[i])
	}
	return executor.OK(b.String())
}

func builtinHelp(d *Dispatcher, _ []string) Result {
	var b strings.Builder
	b.WriteString("builtin commands:\n")
	for _, name := range d.registry.List() {
		fmt.Fprintf(&b, "  %s\n", d.registry.Help(name))
	}
	return executor.OK(b.String())
}

// pathErrReason unwraps PathError noise so diagnostics read like a
// shell's ("no such file or directory", not the full Go error).
func pathErrReason(err error) string {
	if pe, ok := err.(*os.PathError); ok {
		return pe.Err.Error()
	}
	return err.Error()
}
