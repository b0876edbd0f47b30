package classify

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// PathIndex caches the base names of files found in every directory on
// the search path. It is safe for concurrent use: rebuilds construct a
// fresh map and swap it in atomically under the write lock, so readers
// never see a torn index.
//
// Presence of a regular file (resolved through symlinks) is the
// signal; the executable bit is deliberately not checked. This keeps
// the scan cheap and tolerant of platform permission quirks, at the
// cost of occasionally treating a stray regular file on $PATH as a
// command name.
type PathIndex struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

// NewPathIndex builds an index from the current $PATH.
func NewPathIndex() *PathIndex {
	idx := &PathIndex{}
	idx.Reload()
	return idx
}

// Has reports whether name is a known executable base name.
func (idx *PathIndex) Has(name string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, ok := idx.names[name]
	return ok
}

// Len returns the number of indexed names.
func (idx *PathIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.names)
}

// Complete returns all indexed names with the given prefix, sorted.
// Used by the line editor's completion consumer.
func (idx *PathIndex) Complete(prefix string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var out []string
	for name := range idx.names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Reload rescans $PATH and atomically swaps in the new index.
// Callers that mutate PATH (the export builtin) must invoke this for
// the command/natural-language boundary to stay accurate.
func (idx *PathIndex) Reload() {
	names := scanPath(os.Getenv("PATH"))
	idx.mu.Lock()
	idx.names = names
	idx.mu.Unlock()
}

func scanPath(pathVar string) map[string]struct{} {
	names := make(map[string]struct{})
	for _, dir := range filepath.SplitList(pathVar) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			// Stat resolves symlinks; only regular files count.
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			names[entry.Name()] = struct{}{}
		}
	}
	return names
}
