package cache

import (
	"github.com/cespare/xxhash/v2"

	"github.com/guttosm/storefront-service/internal/metrics"
)

const defaultShards = 16

// Sharded spreads string-keyed entries over several TTL caches to reduce lock
// contention. Capacity is divided evenly between the shards.
type Sharded[V any] struct {
	name      string
	capacity  int
	shards    []*TTL[string, V]
	shardMask uint64
}

var _ WithMetrics[string, int] = (*Sharded[int])(nil)

// NewSharded creates a sharded cache. numShards is rounded up to a power of
// two; non-positive values select 16.
func NewSharded[V any](cfg Config[string, V], numShards int) *Sharded[V] {
	if numShards <= 0 {
		numShards = defaultShards
	}
	n := 1
	for n < numShards {
		n *= 2
	}

	perShard := cfg.Capacity / n
	if perShard < 1 {
		perShard = 1
	}
	shardCfg := cfg
	shardCfg.Capacity = perShard

	shards := make([]*TTL[string, V], n)
	for i := range shards {
		shards[i] = newTTL(shardCfg)
		shards[i].sized = false
		go shards[i].startCleanup(shardCfg.cleanupInterval())
	}

	return &Sharded[V]{
		name:      cfg.Name,
		capacity:  perShard * n,
		shards:    shards,
		shardMask: uint64(n - 1),
	}
}

func (sc *Sharded[V]) shard(key string) *TTL[string, V] {
	return sc.shards[xxhash.Sum64String(key)&sc.shardMask]
}

// Get retrieves a value from the key's shard.
func (sc *Sharded[V]) Get(key string) (V, bool) {
	return sc.shard(key).Get(key)
}

// Set stores a value in the key's shard.
func (sc *Sharded[V]) Set(key string, value V) {
	sc.shard(key).Set(key, value)
	metrics.UpdateCacheMetrics(sc.name, sc.Len(), sc.capacity)
}

// Invalidate removes a key from its shard.
func (sc *Sharded[V]) Invalidate(key string) {
	sc.shard(key).Invalidate(key)
}

// Len returns the total number of entries.
func (sc *Sharded[V]) Len() int {
	total := 0
	for _, s := range sc.shards {
		total += s.Len()
	}
	return total
}

// Clear removes all entries from all shards.
func (sc *Sharded[V]) Clear() {
	for _, s := range sc.shards {
		s.Clear()
	}
	metrics.UpdateCacheMetrics(sc.name, 0, sc.capacity)
}

// Stop shuts down all shards.
func (sc *Sharded[V]) Stop() {
	for _, s := range sc.shards {
		s.Stop()
	}
}

// Metrics returns metrics aggregated over all shards.
func (sc *Sharded[V]) Metrics() Metrics {
	var total Metrics
	for _, s := range sc.shards {
		m := s.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}
