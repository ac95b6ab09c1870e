package assets

import (
	"slices"
	"sync"
)

// Cache is an in-memory byte cache for fetched assets, bounded by total
// size. The oldest entries are evicted first.
type Cache struct {
	mu       sync.Mutex
	data     map[string][]byte
	order    []string
	size     int64
	maxBytes int64

	hits   int
	misses int
}

// NewCache creates a cache holding at most maxBytes. Zero means unbounded.
func NewCache(maxBytes int64) *Cache {
	return &Cache{
		data:     make(map[string][]byte),
		maxBytes: maxBytes,
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item. Items larger than the whole budget are not cached.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := int64(len(data))
	if c.maxBytes > 0 && n > c.maxBytes {
		return
	}
	if old, ok := c.data[key]; ok {
		c.size -= int64(len(old))
		c.remove(key)
	}
	for c.maxBytes > 0 && c.size+n > c.maxBytes && len(c.order) > 0 {
		oldest := c.order[0]
		c.size -= int64(len(c.data[oldest]))
		delete(c.data, oldest)
		c.order = slices.Delete(c.order, 0, 1)
	}
	c.data[key] = data
	c.order = append(c.order, key)
	c.size += n
}

func (c *Cache) remove(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = slices.Delete(c.order, i, i+1)
			return
		}
	}
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.order = nil
	c.size = 0
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Size returns the number of cached bytes.
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}
