//go:build !integration

package cache

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSharded(t *testing.T) {
	tests := []struct {
		name         string
		capacity     int
		numShards    int
		wantShards   int
		wantCapacity int
	}{
		{name: "default shards when zero", capacity: 160, numShards: 0, wantShards: 16, wantCapacity: 160},
		{name: "default shards when negative", capacity: 160, numShards: -1, wantShards: 16, wantCapacity: 160},
		{name: "rounds up to power of two", capacity: 100, numShards: 3, wantShards: 4, wantCapacity: 100},
		{name: "at least one entry per shard", capacity: 2, numShards: 8, wantShards: 8, wantCapacity: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := NewSharded(Config[string, int]{Name: "test", Capacity: tt.capacity, TTL: time.Minute}, tt.numShards)
			t.Cleanup(sc.Stop)

			assert.Len(t, sc.shards, tt.wantShards)
			assert.Equal(t, tt.wantCapacity, sc.Metrics().Capacity)
		})
	}
}

func TestSharded_Operations(t *testing.T) {
	var evicted []string
	sc := NewSharded(Config[string, string]{
		Name:     "test",
		Capacity: 256,
		TTL:      time.Minute,
		OnEvict:  func(k, _ string) { evicted = append(evicted, k) },
	}, 4)
	t.Cleanup(sc.Stop)

	for i := 0; i < 20; i++ {
		sc.Set("k"+strconv.Itoa(i), "v"+strconv.Itoa(i))
	}
	assert.Equal(t, 20, sc.Len())

	v, ok := sc.Get("k7")
	assert.True(t, ok)
	assert.Equal(t, "v7", v)

	sc.Invalidate("k7")
	_, ok = sc.Get("k7")
	assert.False(t, ok)
	assert.Equal(t, []string{"k7"}, evicted)

	m := sc.Metrics()
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, 19, m.Size)

	sc.Clear()
	assert.Equal(t, 0, sc.Len())
	assert.Len(t, evicted, 20)
}

func TestSharded_SameKeySameShard(t *testing.T) {
	sc := NewSharded(Config[string, int]{Name: "test", Capacity: 64, TTL: time.Minute}, 8)
	t.Cleanup(sc.Stop)

	assert.Same(t, sc.shard("100|20"), sc.shard("100|20"))
}
