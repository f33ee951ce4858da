package listing

import (
	"sync"
	"time"

	"github.com/guttosm/storefront-service/internal/schedule"
)

const (
	DefaultRevealDelay   = 300 * time.Millisecond
	DefaultRevealStagger = 50 * time.Millisecond
)

type sessionConfig struct {
	batch   int
	delay   time.Duration
	stagger time.Duration
}

// SessionOption configures a Session.
type SessionOption func(*sessionConfig)

// WithRevealBatch caps how many items one RevealMore promotes. Zero or less
// reveals everything that is left.
func WithRevealBatch(n int) SessionOption {
	return func(c *sessionConfig) {
		c.batch = n
	}
}

// WithRevealTiming sets the delay before the first revealed item appears and
// the gap between consecutive ones.
func WithRevealTiming(delay, stagger time.Duration) SessionOption {
	return func(c *sessionConfig) {
		if delay >= 0 {
			c.delay = delay
		}
		if stagger >= 0 {
			c.stagger = stagger
		}
	}
}

// Revealed is an item promoted by RevealMore with its animation offset.
type Revealed[T any] struct {
	Item  Item[T]
	Delay time.Duration
}

// Reveal is the outcome of one RevealMore call.
type Reveal[T any] struct {
	Items   []Revealed[T]
	HasMore bool
	// Inert is set once nothing is left to reveal; the control stays inert for good.
	Inert bool
}

// Session holds one partitioned grid and its "load more" state.
type Session[T any] struct {
	mu      sync.Mutex
	cfg     sessionConfig
	initial Result[T]
	pending []Item[T]
	shown   int
	inert   bool
	playing schedule.Group
}

// NewSession partitions items and keeps the hidden remainder for RevealMore.
func NewSession[T any](items []Item[T], requestedPrice *string, pageSize int, opts ...SessionOption) *Session[T] {
	cfg := sessionConfig{delay: DefaultRevealDelay, stagger: DefaultRevealStagger}
	for _, opt := range opts {
		opt(&cfg)
	}

	res := Partition(items, requestedPrice, pageSize)
	pending := make([]Item[T], len(res.Hidden))
	copy(pending, res.Hidden)

	return &Session[T]{
		cfg:     cfg,
		initial: res,
		pending: pending,
		shown:   len(res.Shown),
		inert:   !res.HasMore,
	}
}

// Initial returns the partition the session started from.
func (s *Session[T]) Initial() Result[T] {
	return s.initial
}

// HasMore reports whether hidden matching items remain.
func (s *Session[T]) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

// Inert reports whether the "load more" control no longer does anything.
func (s *Session[T]) Inert() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inert
}

// VisibleCount is the number of items shown so far.
func (s *Session[T]) VisibleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shown
}

// RevealMore promotes the next batch of hidden items in their original order.
// Items are never revealed twice; once the hidden set is empty every call
// returns an empty inert Reveal.
func (s *Session[T]) RevealMore() Reveal[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inert {
		return Reveal[T]{Items: []Revealed[T]{}, Inert: true}
	}

	n := len(s.pending)
	if s.cfg.batch > 0 && s.cfg.batch < n {
		n = s.cfg.batch
	}
	batch := s.pending[:n]
	s.pending = s.pending[n:]
	s.shown += n

	out := make([]Revealed[T], n)
	for i, it := range batch {
		out[i] = Revealed[T]{
			Item:  it,
			Delay: s.cfg.delay + time.Duration(i)*s.cfg.stagger,
		}
	}

	s.inert = len(s.pending) == 0
	return Reveal[T]{Items: out, HasMore: !s.inert, Inert: s.inert}
}

// Play schedules show for every item of r at its delay. Pending calls are
// dropped by Close. It is meant for in-process renderers; HTTP clients get
// the delays in the reveal and animate on their side.
func (s *Session[T]) Play(sched schedule.Scheduler, r Reveal[T], show func(Item[T])) {
	for _, rv := range r.Items {
		item := rv.Item
		s.playing.Add(sched.After(rv.Delay, func() { show(item) }))
	}
}

// Close cancels reveal animations that have not run yet.
func (s *Session[T]) Close() {
	s.playing.CancelAll()
}
