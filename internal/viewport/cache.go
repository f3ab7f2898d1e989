// Package viewport кэширует результаты запросов карты по видимой области.
package viewport

import (
	"sort"
	"sync"
	"time"
)

// Entry элемент кэша
type Entry[T any] struct {
	CreatedAt time.Time
	ExpiresAt time.Time
	Data      T
}

// expired: запись живет до ExpiresAt включительно
func (e *Entry[T]) expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Cache is a capacity bounded TTL cache safe for concurrent use.
// On overflow the oldest 10% of entries (at least one) by creation time are evicted.
type Cache[T any] struct {
	entries  map[string]*Entry[T]
	now      func() time.Time
	mu       sync.Mutex
	capacity int
}

// NewCache creates a cache holding at most capacity entries
func NewCache[T any](capacity int) *Cache[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache[T]{
		entries:  make(map[string]*Entry[T], capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the value if present and not expired. Expired entries are dropped.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if e.expired(c.now()) {
		delete(c.entries, key)
		return zero, false
	}
	return e.Data, true
}

// Set stores value for ttl, evicting old entries when the cache is full.
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldestLocked()
	}

	now := c.now()
	c.entries[key] = &Entry[T]{
		Data:      value,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Delete removes key
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all entries
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included until Cleanup.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cleanup drops expired entries and returns how many were removed.
func (c *Cache[T]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Range calls fn for every live entry until fn returns false.
// fn must not call back into the cache.
func (c *Cache[T]) Range(fn func(key string, value T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if e.expired(now) {
			continue
		}
		if !fn(k, e.Data) {
			return
		}
	}
}

func (c *Cache[T]) evictOldestLocked() {
	type aged struct {
		created time.Time
		key     string
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, created: e.CreatedAt})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].created.Equal(all[j].created) {
			return all[i].key < all[j].key
		}
		return all[i].created.Before(all[j].created)
	})

	n := max(1, len(all)/10)
	for _, a := range all[:n] {
		delete(c.entries, a.key)
	}
}
