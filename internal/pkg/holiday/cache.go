package holiday

import "sync"

// Cache stores fetched holiday lists per (country, year) key. Entries are
// immutable once fetched, so a racing duplicate Set is harmless.
type Cache interface {
	Get(key string) ([]Holiday, bool)
	Set(key string, holidays []Holiday)
}

// memoryCache is the process-lifetime default. It is unbounded; cardinality
// is countries x years, which stays small in practice.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string][]Holiday
}

func NewMemoryCache() Cache {
	return &memoryCache{entries: make(map[string][]Holiday)}
}

func (c *memoryCache) Get(key string) ([]Holiday, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	holidays, ok := c.entries[key]
	return holidays, ok
}

func (c *memoryCache) Set(key string, holidays []Holiday) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = holidays
}
