package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// componentRegistry maps component names to the .frr source files that
// define them. The dev server consults it to serve component previews.
type componentRegistry struct {
	mu    sync.RWMutex
	paths map[string]string
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{paths: make(map[string]string)}
}

// Scan rebuilds the registry from srcDir. A component is any .frr file
// under components/; its name is the file name without extension.
func (r *componentRegistry) Scan(srcDir string) error {
	componentsDir := filepath.Join(srcDir, "components")
	if _, err := os.Stat(componentsDir); os.IsNotExist(err) {
		r.mu.Lock()
		r.paths = make(map[string]string)
		r.mu.Unlock()
		return nil
	}

	paths := make(map[string]string)
	err := filepath.WalkDir(componentsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".frr") {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), ".frr")
		paths[name] = path
		return nil
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.paths = paths
	r.mu.Unlock()
	return nil
}

// Lookup returns the source path for a component name.
func (r *componentRegistry) Lookup(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.paths[name]
	return path, ok
}

// Names returns the registered component names, sorted.
func (r *componentRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.paths))
	for name := range r.paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
