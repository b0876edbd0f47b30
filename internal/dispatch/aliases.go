package dispatch

import (
	"sort"
	"sync"
)

// Aliases is the shell's alias table. Expansion is single-shot and
// non-recursive: the program token of a stage is replaced by the
// alias value's tokens at dispatch time.
type Aliases struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewAliases creates an empty alias table.
func NewAliases() *Aliases {
	return &Aliases{m: make(map[string]string)}
}

// Set defines or replaces an alias.
func (a *Aliases) Set(name, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.m[name] = value
}

// Get returns the alias value and whether it exists.
func (a *Aliases) Get(name string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.m[name]
	return v, ok
}

// Remove deletes an alias; it reports whether one existed.
func (a *Aliases) Remove(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.m[name]
	delete(a.m, name)
	return ok
}

// Names returns defined alias names in sorted order.
func (a *Aliases) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.m))
	for name := range a.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
