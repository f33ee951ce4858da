package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/storefront-service/internal/schedule"
)

func TestSession_RevealAllRemaining(t *testing.T) {
	s := NewSession(cards("a", "499", 12), ptr("499"), 9)

	require.True(t, s.HasMore())
	require.False(t, s.Inert())
	assert.Len(t, s.Initial().Shown, 9)

	r := s.RevealMore()
	require.Len(t, r.Items, 3)
	assert.Equal(t, "a-9", r.Items[0].Item.Value)
	assert.Equal(t, "a-11", r.Items[2].Item.Value)
	assert.False(t, r.HasMore)
	assert.True(t, r.Inert)
	assert.Equal(t, 12, s.VisibleCount())

	again := s.RevealMore()
	assert.Empty(t, again.Items)
	assert.True(t, again.Inert)
	assert.False(t, s.HasMore())
	assert.Equal(t, 12, s.VisibleCount())
}

func TestSession_BatchedReveal(t *testing.T) {
	s := NewSession(cards("a", "1", 20), nil, 9, WithRevealBatch(4))

	var seen []string
	for i := 0; i < 10; i++ {
		r := s.RevealMore()
		for _, rv := range r.Items {
			seen = append(seen, rv.Item.Value)
		}
		if r.Inert {
			break
		}
		assert.True(t, r.HasMore)
	}

	assert.Len(t, seen, 11)
	assert.Equal(t, "a-9", seen[0])
	assert.Equal(t, "a-19", seen[10])
	assert.True(t, s.Inert())
}

func TestSession_NeverRevealsExcluded(t *testing.T) {
	items := append(cards("a", "499", 10), cards("b", "999", 5)...)
	s := NewSession(items, ptr("499"), 9)

	r := s.RevealMore()

	require.Len(t, r.Items, 1)
	assert.Equal(t, "a-9", r.Items[0].Item.Value)
	assert.Equal(t, 10, s.VisibleCount())
}

func TestSession_InertFromStart(t *testing.T) {
	s := NewSession(cards("a", "499", 3), ptr("499"), 9)

	assert.True(t, s.Inert())
	assert.False(t, s.HasMore())
	assert.Empty(t, s.RevealMore().Items)
}

func TestSession_StaggerDelays(t *testing.T) {
	s := NewSession(cards("a", "1", 12), nil, 9)

	r := s.RevealMore()

	require.Len(t, r.Items, 3)
	assert.Equal(t, 300*time.Millisecond, r.Items[0].Delay)
	assert.Equal(t, 350*time.Millisecond, r.Items[1].Delay)
	assert.Equal(t, 400*time.Millisecond, r.Items[2].Delay)
}

func TestSession_CustomTiming(t *testing.T) {
	s := NewSession(cards("a", "1", 11), nil, 9, WithRevealTiming(0, 10*time.Millisecond))

	r := s.RevealMore()

	assert.Equal(t, time.Duration(0), r.Items[0].Delay)
	assert.Equal(t, 10*time.Millisecond, r.Items[1].Delay)
}

func TestSession_PlayAndClose(t *testing.T) {
	s := NewSession(cards("a", "1", 12), nil, 9)
	sched := schedule.NewManual()
	var shown []string

	s.Play(sched, s.RevealMore(), func(it Item[string]) { shown = append(shown, it.Value) })

	sched.Advance(349 * time.Millisecond)
	assert.Equal(t, []string{"a-9"}, shown)

	s.Close()
	sched.Advance(time.Second)
	assert.Equal(t, []string{"a-9"}, shown)
	assert.Zero(t, sched.Pending())
}
