// Package schedule runs deferred callbacks behind cancellable handles.
// Owners cancel what they scheduled when they are replaced or torn down.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Handle controls a scheduled task.
type Handle interface {
	// Cancel prevents the task from running. It reports whether the task was
	// still pending.
	Cancel() bool
}

// Scheduler defers work.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
}

// Timer schedules tasks on real timers.
type Timer struct{}

// NewTimer returns a Scheduler backed by time.AfterFunc.
func NewTimer() Timer {
	return Timer{}
}

// After runs fn on its own goroutine once d has elapsed.
func (Timer) After(d time.Duration, fn func()) Handle {
	return timerHandle{t: time.AfterFunc(d, fn)}
}

type timerHandle struct {
	t *time.Timer
}

func (h timerHandle) Cancel() bool {
	return h.t.Stop()
}

// Group tracks handles so they can be cancelled together.
type Group struct {
	mu      sync.Mutex
	handles []Handle
}

// Add records h.
func (g *Group) Add(h Handle) {
	g.mu.Lock()
	g.handles = append(g.handles, h)
	g.mu.Unlock()
}

// CancelAll cancels every recorded handle and returns how many were still pending.
func (g *Group) CancelAll() int {
	g.mu.Lock()
	handles := g.handles
	g.handles = nil
	g.mu.Unlock()

	pending := 0
	for _, h := range handles {
		if h.Cancel() {
			pending++
		}
	}
	return pending
}

// Manual is a deterministic Scheduler driven by Advance. Tasks run on the
// caller's goroutine in due order; ties run in scheduling order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	m        *Manual
	due      time.Duration
	seq      int
	fn       func()
	canceled bool
	done     bool
}

// NewManual returns a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// After schedules fn at now+d.
func (m *Manual) After(d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{m: m, due: m.now + d, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

func (t *manualTask) Cancel() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.done || t.canceled {
		return false
	}
	t.canceled = true
	return true
}

// Advance moves virtual time forward by d and runs every task that falls due.
// Tasks scheduled by running tasks are honored if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		next.done = true
		m.mu.Unlock()

		next.fn()
	}
}

func (m *Manual) nextDueLocked(target time.Duration) *manualTask {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.done && !t.canceled {
			live = append(live, t)
		}
	}
	m.tasks = live
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due == m.tasks[j].due {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].due < m.tasks[j].due
	})
	if len(m.tasks) == 0 || m.tasks[0].due > target {
		return nil
	}
	return m.tasks[0]
}

// Pending reports how many tasks are scheduled and not cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.done && !t.canceled {
			n++
		}
	}
	return n
}
