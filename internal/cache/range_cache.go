package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultRangeCacheSize bounds per-range memoization when no capacity
// is configured.
const DefaultRangeCacheSize = 32

// RangeCache memoizes immutable values per normalized fetch window.
// Eviction is capacity-based only; entries are never invalidated.
type RangeCache[V any] struct {
	entries *lru.Cache[string, V]
}

// NewRangeCache builds a bounded LRU keyed by range key.
func NewRangeCache[V any](size int) (*RangeCache[V], error) {
	if size <= 0 {
		size = DefaultRangeCacheSize
	}
	entries, err := lru.New[string, V](size)
	if err != nil {
		return nil, err
	}
	return &RangeCache[V]{entries: entries}, nil
}

func (c *RangeCache[V]) Get(key string) (V, bool) {
	return c.entries.Get(key)
}

func (c *RangeCache[V]) Set(key string, value V) {
	c.entries.Add(key, value)
}

func (c *RangeCache[V]) Len() int {
	return c.entries.Len()
}

func (c *RangeCache[V]) Purge() {
	c.entries.Purge()
}
