package world

import (
	"sync"
	"time"
)

// Cache is the process-wide WorldCache (spec.md §5): a handle IRI -> World
// map with concurrent map semantics (per-key exclusion is sufficient; no
// cross-key transactions are needed). It is an optional convenience, not a
// requirement: every evaluation path also works against a caller-owned
// *World built directly with New, which is what deterministic tests use
// (spec.md §9 "Global mutable world").
type Cache struct {
	mu     sync.RWMutex
	worlds map[string]*World
	clock  func() time.Time
}

// NewCache constructs an empty, process-wide-safe WorldCache.
func NewCache(clock func() time.Time) *Cache {
	return &Cache{worlds: make(map[string]*World), clock: clock}
}

// GetOrCreate returns the World registered under handle, creating one with
// Cache's clock if none exists yet.
func (c *Cache) GetOrCreate(handle string) *World {
	c.mu.RLock()
	w, ok := c.worlds[handle]
	c.mu.RUnlock()
	if ok {
		return w
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok = c.worlds[handle]; ok {
		return w
	}
	w = New(c.clock)
	c.worlds[handle] = w
	return w
}

// Get returns the World registered under handle, if any.
func (c *Cache) Get(handle string) (*World, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, ok := c.worlds[handle]
	return w, ok
}

// Put registers w under handle, replacing any existing entry.
func (c *Cache) Put(handle string, w *World) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.worlds[handle] = w
}

// Delete discards the World registered under handle, releasing its
// pending callbacks (spec.md §5 "Cancellation": "a forcibly dropped world
// discards pending callbacks").
func (c *Cache) Delete(handle string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.worlds, handle)
}
