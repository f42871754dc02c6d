package ristretto

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/hushbox/hushauth/cache"
)

// Size levels for the cache. They trade memory for hit rate.
const (
	SizeSmall     = "small"      // ~1MB, tracks 100k keys
	SizeMedium    = "medium"     // ~64MB, tracks 1M keys
	SizeLarge     = "large"      // ~256MB, tracks 10M keys
	SizeVeryLarge = "very-large" // ~1GB, tracks 10M keys
)

type Cache[V any] struct {
	cache *ristretto.Cache[string, V]
}

var _ cache.Cache[string, any] = (*Cache[any])(nil)

func (rc *Cache[V]) Get(key string) (V, bool) {
	return rc.cache.Get(key)
}

func (rc *Cache[V]) Set(key string, value V, cost int64) bool {
	return rc.cache.Set(key, value, cost)
}

func (rc *Cache[V]) SetWithTTL(key string, value V, cost int64, ttl time.Duration) bool {
	return rc.cache.SetWithTTL(key, value, cost, ttl)
}

// New creates a string-keyed cache sized by level (small, medium, large,
// very-large).
func New[V any](level string) (cache.Cache[string, V], error) {
	var numCounters, maxCost int64

	switch level {
	case SizeSmall:
		numCounters, maxCost = 1e5, 1<<20
	case SizeMedium:
		numCounters, maxCost = 1e6, 1<<26
	case SizeLarge:
		numCounters, maxCost = 1e7, 1<<28
	case SizeVeryLarge:
		numCounters, maxCost = 1e7, 1<<30
	default:
		return nil, fmt.Errorf("unknown cache size level %q", level)
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &Cache[V]{cache: c}, nil
}
