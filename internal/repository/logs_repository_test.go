//go:build !integration

package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestLogQueryOptions_Filter(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name string
		opts LogQueryOptions
		want bson.M
	}{
		{
			name: "empty",
			opts: LogQueryOptions{Limit: 10, Skip: 5},
			want: bson.M{},
		},
		{
			name: "exact matches",
			opts: LogQueryOptions{RequestID: "r1", Level: "info", ActionType: "order_created", Subject: "admin", Method: "POST"},
			want: bson.M{
				"request_id":  "r1",
				"level":       "info",
				"action_type": "order_created",
				"subject":     "admin",
				"method":      "POST",
			},
		},
		{
			name: "path regex",
			opts: LogQueryOptions{Path: "/api/listings"},
			want: bson.M{"path": bson.M{"$regex": "/api/listings", "$options": "i"}},
		},
		{
			name: "open ended window",
			opts: LogQueryOptions{StartTime: &start},
			want: bson.M{"timestamp": bson.M{"$gte": start}},
		},
		{
			name: "closed window",
			opts: LogQueryOptions{StartTime: &start, EndTime: &end},
			want: bson.M{"timestamp": bson.M{"$gte": start, "$lte": end}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.filter())
		})
	}
}

func TestLogEntryDocument_FillDefaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	doc := &LogEntryDocument{}
	doc.fillDefaults(now)
	assert.False(t, doc.ID.IsZero())
	assert.Equal(t, now, doc.Timestamp)

	id := doc.ID
	earlier := now.Add(-time.Minute)
	doc.Timestamp = earlier
	doc.fillDefaults(now)
	assert.Equal(t, id, doc.ID)
	assert.Equal(t, earlier, doc.Timestamp)
}
