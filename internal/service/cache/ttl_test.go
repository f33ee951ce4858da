//go:build !integration

package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestTTL[V any](t *testing.T, capacity int, ttl time.Duration, onEvict func(string, V)) (*TTL[string, V], *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := newTTL(Config[string, V]{Name: "test", Capacity: capacity, TTL: ttl, OnEvict: onEvict})
	c.now = clock.now
	return c, clock
}

func TestTTL_Get(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(c *TTL[string, int], clock *fakeClock)
		key       string
		wantValue int
		wantFound bool
	}{
		{
			name: "returns value when present and fresh",
			setup: func(c *TTL[string, int], _ *fakeClock) {
				c.Set("a", 1)
			},
			key:       "a",
			wantValue: 1,
			wantFound: true,
		},
		{
			name:      "misses unknown key",
			setup:     func(*TTL[string, int], *fakeClock) {},
			key:       "nope",
			wantFound: false,
		},
		{
			name: "misses expired entry",
			setup: func(c *TTL[string, int], clock *fakeClock) {
				c.Set("a", 1)
				clock.advance(2 * time.Minute)
			},
			key:       "a",
			wantFound: false,
		},
		{
			name: "set restarts ttl",
			setup: func(c *TTL[string, int], clock *fakeClock) {
				c.Set("a", 1)
				clock.advance(50 * time.Second)
				c.Set("a", 2)
				clock.advance(50 * time.Second)
			},
			key:       "a",
			wantValue: 2,
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock := newTestTTL[int](t, 10, time.Minute, nil)
			tt.setup(c, clock)

			got, found := c.Get(tt.key)

			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantValue, got)
		})
	}
}

func TestTTL_EvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c, _ := newTestTTL(t, 2, time.Minute, func(k string, _ int) { evicted = append(evicted, k) })

	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a")
	c.Set("c", 3)

	_, foundB := c.Get("b")
	_, foundA := c.Get("a")
	assert.False(t, foundB)
	assert.True(t, foundA)
	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, int64(1), c.Metrics().Evictions)
}

func TestTTL_OnEvict(t *testing.T) {
	tests := []struct {
		name string
		act  func(c *TTL[string, int], clock *fakeClock)
		want map[string]int
	}{
		{
			name: "invalidate",
			act:  func(c *TTL[string, int], _ *fakeClock) { c.Invalidate("a") },
			want: map[string]int{"a": 1},
		},
		{
			name: "replace is not an eviction",
			act:  func(c *TTL[string, int], _ *fakeClock) { c.Set("a", 10) },
			want: map[string]int{},
		},
		{
			name: "expired on read",
			act: func(c *TTL[string, int], clock *fakeClock) {
				clock.advance(2 * time.Minute)
				_, _ = c.Get("b")
			},
			want: map[string]int{"b": 2},
		},
		{
			name: "cleanup",
			act: func(c *TTL[string, int], clock *fakeClock) {
				clock.advance(2 * time.Minute)
				c.cleanup()
			},
			want: map[string]int{"a": 1, "b": 2},
		},
		{
			name: "clear",
			act:  func(c *TTL[string, int], _ *fakeClock) { c.Clear() },
			want: map[string]int{"a": 1, "b": 2},
		},
		{
			name: "invalidate unknown key",
			act:  func(c *TTL[string, int], _ *fakeClock) { c.Invalidate("zzz") },
			want: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := map[string]int{}
			c, clock := newTestTTL(t, 10, time.Minute, func(k string, v int) { got[k] = v })
			c.Set("a", 1)
			c.Set("b", 2)

			tt.act(c, clock)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTTL_OnEvictMayReenter(t *testing.T) {
	var c *TTL[string, int]
	c, _ = newTestTTL(t, 1, time.Minute, func(k string, _ int) {
		assert.Equal(t, 1, c.Len())
	})

	c.Set("a", 1)
	c.Set("b", 2)
}

func TestTTL_ZeroTTLNeverExpires(t *testing.T) {
	c, clock := newTestTTL[int](t, 10, 0, nil)
	c.Set("a", 1)
	clock.advance(24 * time.Hour)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestTTL_ClearResetsMetrics(t *testing.T) {
	c, _ := newTestTTL[int](t, 10, time.Minute, nil)
	c.Set("a", 1)
	_, _ = c.Get("a")
	_, _ = c.Get("b")

	m := c.Metrics()
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, 1, m.Size)
	assert.Equal(t, 10, m.Capacity)

	c.Clear()

	assert.Equal(t, Metrics{Capacity: 10}, c.Metrics())
	assert.Equal(t, 0, c.Len())
}

func TestTTL_StopIsIdempotent(t *testing.T) {
	c := NewTTL(Config[string, int]{Name: "test", Capacity: 1, TTL: time.Minute})
	assert.NotPanics(t, func() {
		c.Stop()
		c.Stop()
	})
}

func TestTTL_Concurrent(t *testing.T) {
	c := NewTTL(Config[string, int]{Name: "test", Capacity: 64, TTL: time.Minute})
	t.Cleanup(c.Stop)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa((g*200 + i) % 100)
				c.Set(key, i)
				_, _ = c.Get(key)
				if i%17 == 0 {
					c.Invalidate(key)
				}
			}
		}(g)
	}
	wg.Wait()

	require.LessOrEqual(t, c.Len(), 64)
}

func TestConfig_CleanupInterval(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config[string, int]
		want time.Duration
	}{
		{name: "explicit", cfg: Config[string, int]{CleanupInterval: 5 * time.Second, TTL: time.Hour}, want: 5 * time.Second},
		{name: "short ttl", cfg: Config[string, int]{TTL: 10 * time.Second}, want: 10 * time.Second},
		{name: "long ttl capped", cfg: Config[string, int]{TTL: time.Hour}, want: time.Minute},
		{name: "no ttl", cfg: Config[string, int]{}, want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.cleanupInterval())
		})
	}
}
