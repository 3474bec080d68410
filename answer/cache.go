package answer

import "sync"

// Cache stores generated answers by exact query text.
type Cache interface {
	Get(query string) (string, bool)
	Set(query, answer string)
	Len() int
}

// MemoryCache is an unbounded in-process Cache. Entries never expire.
type MemoryCache struct {
	mu      sync.RWMutex
	answers map[string]string
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{answers: make(map[string]string)}
}

func (c *MemoryCache) Get(query string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	answer, ok := c.answers[query]
	return answer, ok
}

func (c *MemoryCache) Set(query, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[query] = answer
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.answers)
}
