package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/storefront-service/internal/metrics"
)

// TTL is a thread-safe LRU cache whose entries also expire after a fixed TTL.
type TTL[K comparable, V any] struct {
	mu        sync.Mutex
	name      string
	capacity  int
	ttl       time.Duration
	onEvict   func(K, V)
	items     map[K]*entry[K, V]
	head      *entry[K, V]
	tail      *entry[K, V]
	now       func() time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once
	sized     bool
	hits      int64
	misses    int64
	evictions int64
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
	prev      *entry[K, V]
	next      *entry[K, V]
}

var _ WithMetrics[string, int] = (*TTL[string, int])(nil)

// NewTTL creates a cache and starts its background cleanup. Call Stop to
// release it.
func NewTTL[K comparable, V any](cfg Config[K, V]) *TTL[K, V] {
	c := newTTL(cfg)
	go c.startCleanup(cfg.cleanupInterval())
	return c
}

func newTTL[K comparable, V any](cfg Config[K, V]) *TTL[K, V] {
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	return &TTL[K, V]{
		name:     cfg.Name,
		capacity: cfg.Capacity,
		ttl:      cfg.TTL,
		onEvict:  cfg.OnEvict,
		items:    make(map[K]*entry[K, V], cfg.Capacity),
		now:      time.Now,
		stopCh:   make(chan struct{}),
		sized:    true,
	}
}

// Stop ends the background cleanup. It is safe to call more than once.
func (c *TTL[K, V]) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Metrics returns current cache performance metrics.
func (c *TTL[K, V]) Metrics() Metrics {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()

	return Metrics{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      size,
		Capacity:  c.capacity,
	}
}

// Len returns the number of entries, expired ones not yet collected included.
func (c *TTL[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Get returns the value for key if present and not expired, and marks it as
// recently used.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	var zero V

	c.mu.Lock()
	e, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation(c.name, "get", "miss")
		return zero, false
	}

	if c.expired(e, c.now()) {
		c.removeEntry(e)
		c.mu.Unlock()
		c.evicted(e)
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation(c.name, "get", "expired")
		return zero, false
	}

	c.moveToFront(e)
	value := e.value
	c.mu.Unlock()

	atomic.AddInt64(&c.hits, 1)
	metrics.RecordCacheOperation(c.name, "get", "hit")
	return value, true
}

// Set adds or replaces a value and restarts its TTL. The least recently used
// entry is evicted when the cache is over capacity. A replaced value is not
// passed to OnEvict.
func (c *TTL[K, V]) Set(key K, value V) {
	var dropped []*entry[K, V]

	c.mu.Lock()
	expiresAt := c.now().Add(c.ttl)
	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
	} else {
		e := &entry[K, V]{key: key, value: value, expiresAt: expiresAt}
		c.items[key] = e
		c.addToFront(e)

		if len(c.items) > c.capacity {
			dropped = append(dropped, c.removeTail())
			atomic.AddInt64(&c.evictions, 1)
			metrics.RecordCacheOperation(c.name, "evict", "capacity")
		}
	}
	size := len(c.items)
	c.mu.Unlock()

	c.evicted(dropped...)
	metrics.RecordCacheOperation(c.name, "set", "success")
	c.reportSize(size)
}

// Invalidate removes key from the cache.
func (c *TTL[K, V]) Invalidate(key K) {
	c.mu.Lock()
	e, ok := c.items[key]
	if ok {
		c.removeEntry(e)
	}
	c.mu.Unlock()

	if ok {
		c.evicted(e)
		metrics.RecordCacheOperation(c.name, "invalidate", "success")
	}
}

// Clear removes all entries and resets the hit counters.
func (c *TTL[K, V]) Clear() {
	c.mu.Lock()
	dropped := make([]*entry[K, V], 0, len(c.items))
	for e := c.head; e != nil; e = e.next {
		dropped = append(dropped, e)
	}
	c.items = make(map[K]*entry[K, V], c.capacity)
	c.head = nil
	c.tail = nil
	c.mu.Unlock()

	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
	atomic.StoreInt64(&c.evictions, 0)

	c.evicted(dropped...)
	metrics.RecordCacheOperation(c.name, "clear", "success")
	c.reportSize(0)
}

func (c *TTL[K, V]) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCh:
			return
		}
	}
}

// cleanup removes every expired entry.
func (c *TTL[K, V]) cleanup() {
	c.mu.Lock()
	now := c.now()
	var dropped []*entry[K, V]
	for _, e := range c.items {
		if c.expired(e, now) {
			c.removeEntry(e)
			dropped = append(dropped, e)
		}
	}
	size := len(c.items)
	c.mu.Unlock()

	if len(dropped) > 0 {
		c.evicted(dropped...)
		metrics.RecordCacheOperation(c.name, "evict", "expired")
		c.reportSize(size)
	}
}

func (c *TTL[K, V]) reportSize(size int) {
	if c.sized {
		metrics.UpdateCacheMetrics(c.name, size, c.capacity)
	}
}

func (c *TTL[K, V]) expired(e *entry[K, V], now time.Time) bool {
	return c.ttl > 0 && now.After(e.expiresAt)
}

func (c *TTL[K, V]) evicted(dropped ...*entry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range dropped {
		c.onEvict(e.key, e.value)
	}
}

func (c *TTL[K, V]) removeEntry(e *entry[K, V]) {
	delete(c.items, e.key)
	c.unlink(e)
}

func (c *TTL[K, V]) moveToFront(e *entry[K, V]) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *TTL[K, V]) addToFront(e *entry[K, V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *TTL[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

// removeTail drops the least recently used entry and returns it.
func (c *TTL[K, V]) removeTail() *entry[K, V] {
	e := c.tail
	if e == nil {
		return nil
	}
	c.removeEntry(e)
	return e
}
