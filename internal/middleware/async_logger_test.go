package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/storefront-service/internal/domain/model"
	"github.com/guttosm/storefront-service/internal/mocks"
)

// recordingLogs collects written entries for assertions on async paths.
type recordingLogs struct {
	mocks.MockLoggingService
	mu      sync.Mutex
	entries []*model.LogEntry
	batches int
	err     error
}

func (r *recordingLogs) CreateLog(_ context.Context, entry *model.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	r.batches++
	return r.err
}

func (r *recordingLogs) CreateLogs(_ context.Context, entries []*model.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entries...)
	r.batches++
	return r.err
}

func (r *recordingLogs) snapshot() ([]*model.LogEntry, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.LogEntry, len(r.entries))
	copy(out, r.entries)
	return out, r.batches
}

func TestDefaultAsyncLoggerConfig(t *testing.T) {
	cfg := DefaultAsyncLoggerConfig()
	assert.Equal(t, 1000, cfg.BufferSize)
	assert.Equal(t, 2, cfg.NumWorkers)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, time.Second, cfg.FlushInterval)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestNewAsyncLogger_NilService(t *testing.T) {
	assert.Nil(t, NewAsyncLogger(nil, DefaultAsyncLoggerConfig()))
}

func TestAsyncLogger_FlushesFullBatches(t *testing.T) {
	rec := &recordingLogs{}
	al := NewAsyncLogger(rec, AsyncLoggerConfig{
		BufferSize:    10,
		NumWorkers:    1,
		BatchSize:     3,
		FlushInterval: time.Hour,
	})
	require.NotNil(t, al)

	for i := 0; i < 3; i++ {
		assert.True(t, al.Log(&model.LogEntry{Message: "entry"}))
	}

	assert.Eventually(t, func() bool {
		entries, batches := rec.snapshot()
		return len(entries) == 3 && batches == 1
	}, time.Second, 10*time.Millisecond)

	al.Stop()
	enqueued, dropped, written, failed := al.Stats()
	assert.Equal(t, int64(3), enqueued)
	assert.Equal(t, int64(0), dropped)
	assert.Equal(t, int64(3), written)
	assert.Equal(t, int64(0), failed)
}

func TestAsyncLogger_FlushesOnInterval(t *testing.T) {
	rec := &recordingLogs{}
	al := NewAsyncLogger(rec, AsyncLoggerConfig{
		BufferSize:    10,
		NumWorkers:    1,
		BatchSize:     100,
		FlushInterval: 20 * time.Millisecond,
	})
	defer al.Stop()

	al.Log(&model.LogEntry{Message: "lonely"})

	assert.Eventually(t, func() bool {
		entries, _ := rec.snapshot()
		return len(entries) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestAsyncLogger_StopDrainsQueue(t *testing.T) {
	rec := &recordingLogs{}
	al := NewAsyncLogger(rec, AsyncLoggerConfig{
		BufferSize:    100,
		NumWorkers:    2,
		BatchSize:     7,
		FlushInterval: time.Hour,
	})

	for i := 0; i < 20; i++ {
		al.Log(&model.LogEntry{Message: "queued"})
	}
	al.Stop()

	entries, _ := rec.snapshot()
	assert.Len(t, entries, 20)
}

func TestAsyncLogger_LogAfterStop(t *testing.T) {
	al := NewAsyncLogger(&recordingLogs{}, AsyncLoggerConfig{NumWorkers: 1})
	al.Stop()
	al.Stop()

	assert.False(t, al.Log(&model.LogEntry{Message: "late"}))
	_, dropped, _, _ := al.Stats()
	assert.Equal(t, int64(1), dropped)
}

func TestAsyncLogger_DropsWhenBufferFull(t *testing.T) {
	block := make(chan struct{})
	svc := new(mocks.MockLoggingService)
	svc.On("CreateLog", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-block }).
		Return(nil)

	al := NewAsyncLogger(svc, AsyncLoggerConfig{
		BufferSize:    1,
		NumWorkers:    1,
		BatchSize:     1,
		FlushInterval: time.Hour,
	})

	// The first entry occupies the worker, the second fills the buffer.
	require.True(t, al.Log(&model.LogEntry{Message: "1"}))
	assert.Eventually(t, func() bool { return len(al.entryCh) == 0 }, time.Second, 5*time.Millisecond)
	require.True(t, al.Log(&model.LogEntry{Message: "2"}))
	assert.False(t, al.Log(&model.LogEntry{Message: "3"}))

	close(block)
	al.Stop()

	enqueued, dropped, written, _ := al.Stats()
	assert.Equal(t, int64(2), enqueued)
	assert.Equal(t, int64(1), dropped)
	assert.Equal(t, int64(2), written)
}

func TestAsyncLogger_CountsFailures(t *testing.T) {
	rec := &recordingLogs{err: errors.New("mongo down")}
	al := NewAsyncLogger(rec, AsyncLoggerConfig{NumWorkers: 1, BatchSize: 2, FlushInterval: time.Hour})

	al.Log(&model.LogEntry{Message: "a"})
	al.Log(&model.LogEntry{Message: "b"})
	al.Stop()

	_, _, written, failed := al.Stats()
	assert.Equal(t, int64(0), written)
	assert.Equal(t, int64(2), failed)
}

func TestGlobalAsyncLogger(t *testing.T) {
	t.Cleanup(StopAsyncLogger)

	assert.Nil(t, GetAsyncLogger())

	first := &recordingLogs{}
	InitAsyncLogger(first, AsyncLoggerConfig{NumWorkers: 1, BatchSize: 1})
	al := GetAsyncLogger()
	require.NotNil(t, al)

	second := &recordingLogs{}
	InitAsyncLogger(second, AsyncLoggerConfig{NumWorkers: 1, BatchSize: 1})
	assert.NotSame(t, al, GetAsyncLogger())
	assert.False(t, al.Log(&model.LogEntry{}), "replaced logger must be stopped")

	StopAsyncLogger()
	assert.Nil(t, GetAsyncLogger())
}

func TestPersist(t *testing.T) {
	t.Run("async logger running", func(t *testing.T) {
		t.Cleanup(StopAsyncLogger)
		rec := &recordingLogs{}
		InitAsyncLogger(rec, AsyncLoggerConfig{NumWorkers: 1, BatchSize: 1})

		persist(nil, &model.LogEntry{Message: "via pool"})
		StopAsyncLogger()

		entries, _ := rec.snapshot()
		require.Len(t, entries, 1)
		assert.Equal(t, "via pool", entries[0].Message)
	})

	t.Run("direct write", func(t *testing.T) {
		rec := &recordingLogs{}
		persist(rec, &model.LogEntry{Message: "direct"})

		assert.Eventually(t, func() bool {
			entries, _ := rec.snapshot()
			return len(entries) == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("no sink", func(t *testing.T) {
		assert.NotPanics(t, func() { persist(nil, &model.LogEntry{}) })
	})
}
