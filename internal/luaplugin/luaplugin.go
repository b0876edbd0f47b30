// Package luaplugin loads user-defined builtin commands written in
// Lua.
//
// Each *.lua file in the plugin directory must return a table:
//
//	return {
//	    name = "greet",
//	    help = "greet [who] - print a greeting",
//	    run = function(args)
//	        return "hello " .. (args[1] or "world") .. "\n", 0
//	    end,
//	}
//
// run receives the argument list as a Lua array and returns the
// command's stdout and exit code. Loaded plugins register into the
// shell's builtin table and behave exactly like native builtins,
// including as the head of a pipeline.
//
// gopher-lua's LState is not goroutine-safe; the manager serializes
// every plugin invocation behind a mutex. The shell executes one line
// at a time, so contention never occurs in practice.
package luaplugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/aish/internal/dispatch"
	"github.com/dshills/aish/internal/executor"
)

// Plugin is one loaded Lua builtin.
type Plugin struct {
	Name string
	Help string
	Path string
	fn   *lua.LFunction
}

// Manager owns the Lua state and the loaded plugins.
type Manager struct {
	mu      sync.Mutex
	state   *lua.LState
	plugins map[string]*Plugin
}

// NewManager creates a manager with a fresh Lua state.
func NewManager() *Manager {
	return &Manager{
		state:   lua.NewState(),
		plugins: make(map[string]*Plugin),
	}
}

// Close releases the Lua state.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Close()
}

// LoadDir loads every *.lua file in dir and registers the resulting
// builtins with the dispatcher. A missing directory is not an error;
// a broken script is reported and skipped.
func (m *Manager) LoadDir(dir string, d *dispatch.Dispatcher) []error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return []error{err}
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		plugin, err := m.loadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		m.register(plugin, d)
	}
	return errs
}

// Plugins returns the loaded plugins sorted by name.
func (m *Manager) Plugins() []*Plugin {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Plugin, 0, len(m.plugins))
	for _, p := range m.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *Manager) loadFile(path string) (*Plugin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.state.DoFile(path); err != nil {
		return nil, err
	}

	ret := m.state.Get(-1)
	m.state.Pop(1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("script must return a table, got %s", ret.Type())
	}

	name := lua.LVAsString(tbl.RawGetString("name"))
	if name == "" {
		return nil, fmt.Errorf("plugin table missing 'name'")
	}
	fn, ok := tbl.RawGetString("run").(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("plugin %q missing 'run' function", name)
	}

	p := &Plugin{
		Name: name,
		Help: lua.LVAsString(tbl.RawGetString("help")),
		Path: path,
		fn:   fn,
	}
	m.plugins[name] = p
	return p, nil
}

func (m *Manager) register(p *Plugin, d *dispatch.Dispatcher) {
	help := p.Help
	if help == "" {
		help = p.Name + " - user plugin"
	}
	d.Registry().Register(p.Name, help, func(_ *dispatch.Dispatcher, args []string) dispatch.Result {
		return m.invoke(p, args)
	})
}

// invoke calls a plugin's run function with the argument list.
func (m *Manager) invoke(p *Plugin, args []string) dispatch.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	argv := m.state.NewTable()
	for _, a := range args {
		argv.Append(lua.LString(a))
	}

	err := m.state.CallByParam(lua.P{Fn: p.fn, NRet: 2, Protect: true}, argv)
	if err != nil {
		return executor.Errorf(1, "%s: %v", p.Name, err)
	}

	exit := m.state.Get(-1)
	stdout := m.state.Get(-2)
	m.state.Pop(2)

	return dispatch.Result{
		Stdout:   lua.LVAsString(stdout),
		ExitCode: int(lua.LVAsNumber(exit)),
	}
}
