package fs

import (
	"sync"
	"time"
)

// cacheEntry holds the decoded documents of one catalog file.
type cacheEntry struct {
	LastModified time.Time
	Size         int64
	Docs         []catalogFile
}

// cache keeps decoded catalog files between reloads so that only changed
// files are read and parsed again. Keys are slash-separated paths relative to
// the catalog root.
type cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

func newCache() *cache {
	return &cache{entries: make(map[string]*cacheEntry)}
}

// Get returns the entry for relPath if it is still fresh.
func (c *cache) Get(relPath string, mtime time.Time, size int64) (*cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[relPath]
	if !ok || !entry.LastModified.Equal(mtime) || entry.Size != size {
		return nil, false
	}
	return entry, true
}

func (c *cache) Set(relPath string, entry *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[relPath] = entry
}

// Prune removes entries that are not in keep.
func (c *cache) Prune(keep map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for path := range c.entries {
		if !keep[path] {
			delete(c.entries, path)
		}
	}
}

func (c *cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
