package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEntry_WithField(t *testing.T) {
	tests := []struct {
		name   string
		entry  *LogEntry
		key    string
		value  any
		verify func(*testing.T, *LogEntry)
	}{
		{
			name:  "allocates fields on first use",
			entry: &LogEntry{},
			key:   "original_price",
			value: "100",
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, "100", e.Fields["original_price"])
			},
		},
		{
			name:  "keeps existing fields",
			entry: &LogEntry{Fields: map[string]any{"session_id": "abc"}},
			key:   "revealed",
			value: 3,
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, "abc", e.Fields["session_id"])
				assert.Equal(t, 3, e.Fields["revealed"])
			},
		},
		{
			name:  "overwrites existing field",
			entry: &LogEntry{Fields: map[string]any{"outcome": "applied"}},
			key:   "outcome",
			value: "not_applicable",
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, "not_applicable", e.Fields["outcome"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.entry.WithField(tt.key, tt.value)
			assert.Same(t, tt.entry, result)
			tt.verify(t, result)
		})
	}
}

func TestLogEntry_WithFields(t *testing.T) {
	entry := &LogEntry{}

	entry.WithFields(map[string]any{"a": 1, "b": "two"}).WithFields(nil)

	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, entry.Fields)
}

func TestLogEntry_IsAudit(t *testing.T) {
	assert.False(t, (&LogEntry{Message: "GET /api/listing"}).IsAudit())
	assert.True(t, (&LogEntry{ActionType: ActionOrderCreated}).IsAudit())
}
