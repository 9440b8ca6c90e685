package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// CatalogState exposes internal state for observability.
type CatalogState struct {
	Path          string     `json:"path"`
	Pattern       string     `json:"pattern"`
	Enums         []string   `json:"enums"`
	Types         int        `json:"types"`
	Files         []string   `json:"files"`
	CacheSize     int        `json:"cache_size"`
	WatcherActive bool       `json:"watcher_active"`
	Reloads       int        `json:"reloads"`
	LastLoad      *time.Time `json:"last_load,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
}

// State implements introspection.Introspectable.
func (c *Catalog) State() any {
	snap := c.snap.Load()

	c.mu.RLock()
	defer c.mu.RUnlock()

	state := CatalogState{
		Path:          c.Path,
		Pattern:       c.config.Pattern,
		Enums:         append([]string(nil), snap.names...),
		Types:         len(snap.types),
		Files:         append([]string(nil), snap.files...),
		CacheSize:     c.cache.Len(),
		WatcherActive: c.watcherActive,
		Reloads:       c.reloads,
	}
	if !snap.loadedAt.IsZero() {
		loaded := snap.loadedAt
		state.LastLoad = &loaded
	}
	if c.lastError != nil {
		state.LastError = c.lastError.Error()
	}
	return state
}

// ComponentType implements introspection.Component.
func (c *Catalog) ComponentType() string {
	return "catalog"
}

var _ introspection.Introspectable = (*Catalog)(nil)
var _ introspection.Component = (*Catalog)(nil)

func (c *Catalog) setWatcherActive(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watcherActive = active
}
