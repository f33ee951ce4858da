// Package cache provides in-memory LRU caches with per-entry expiry.
package cache

import "time"

// Cache defines the operations shared by the cache implementations.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Invalidate(key K)
	Len() int
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// WithMetrics extends Cache with metrics reporting.
type WithMetrics[K comparable, V any] interface {
	Cache[K, V]
	Metrics() Metrics
}

// Config describes a cache.
type Config[K comparable, V any] struct {
	// Name labels the cache in Prometheus metrics.
	Name     string
	Capacity int
	TTL      time.Duration
	// CleanupInterval defaults to the TTL, capped at one minute.
	CleanupInterval time.Duration
	// OnEvict runs outside the cache lock for every value that is evicted,
	// expires, or is removed by Invalidate or Clear.
	OnEvict func(key K, value V)
}

func (c Config[K, V]) cleanupInterval() time.Duration {
	if c.CleanupInterval > 0 {
		return c.CleanupInterval
	}
	if c.TTL > 0 && c.TTL < time.Minute {
		return c.TTL
	}
	return time.Minute
}
