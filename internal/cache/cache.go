// Package cache implements an in-memory artifact cache for the dev server.
// Rendered HTML and generated view code are cached per source file and
// invalidated when the file changes on disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// Cache stores rendered artifacts keyed by content hash.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	stats   Stats
}

type entry struct {
	data       []byte
	created    time.Time
	lastAccess time.Time
	deps       []string
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits       int64
	Misses     int64
	Evictions  int64
	EntryCount int
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// Key derives a cache key from the given inputs.
func Key(inputs ...string) string {
	h := sha256.New()
	for _, input := range inputs {
		h.Write([]byte(input))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached artifact for key, if present.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	e.lastAccess = time.Now()
	c.stats.Hits++
	return e.data, true
}

// Put stores an artifact under key.
func (c *Cache) Put(key string, data []byte) {
	c.PutWithDeps(key, data, nil)
}

// PutWithDeps stores an artifact and records the source paths it was
// built from, so InvalidateByDependency can evict it later.
func (c *Cache) PutWithDeps(key string, data []byte, deps []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	c.entries[key] = &entry{
		data:       data,
		created:    now,
		lastAccess: now,
		deps:       deps,
	}
	c.stats.EntryCount = len(c.entries)
}

// Delete removes the entry for key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.stats.EntryCount = len(c.entries)
}

// InvalidateByDependency evicts every entry built from a path equal to
// or under dep, returning the number of entries removed.
func (c *Cache) InvalidateByDependency(dep string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for key, e := range c.entries {
		for _, d := range e.deps {
			if d == dep || strings.HasPrefix(d, dep) {
				delete(c.entries, key)
				c.stats.Evictions++
				count++
				break
			}
		}
	}
	c.stats.EntryCount = len(c.entries)
	return count
}

// Clear removes all entries and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.stats = Stats{}
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
