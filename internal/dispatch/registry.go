package dispatch

import (
	"sort"
	"sync"
)

// BuiltinFunc handles one builtin invocation. Handlers never spawn a
// child process; they are pure with respect to process state except
// for explicitly mutating the working directory or environment.
type BuiltinFunc func(d *Dispatcher, args []string) Result

type builtin struct {
	name string
	help string
	fn   BuiltinFunc
}

// Registry manages builtin registration by exact command name.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	builtins map[string]builtin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builtins: make(map[string]builtin)}
}

// Register adds or replaces a builtin.
func (r *Registry) Register(name, help string, fn BuiltinFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtins[name] = builtin{name: name, help: help, fn: fn}
}

// Unregister removes a builtin.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.builtins, name)
}

// Get returns the handler for name, or nil when not registered.
func (r *Registry) Get(name string) BuiltinFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.builtins[name]; ok {
		return b.fn
	}
	return nil
}

// Has reports whether name is a registered builtin.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builtins[name]
	return ok
}

// List returns registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Help returns the help line for a builtin, or "".
func (r *Registry) Help(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.builtins[name].help
}
