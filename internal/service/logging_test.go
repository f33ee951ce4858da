//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/storefront-service/internal/domain/model"
	"github.com/guttosm/storefront-service/internal/repository"
)

type MockLogsRepository struct {
	mock.Mock
}

func (m *MockLogsRepository) Create(ctx context.Context, entry *repository.LogEntryDocument) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLogsRepository) CreateMany(ctx context.Context, entries []*repository.LogEntryDocument) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockLogsRepository) Query(ctx context.Context, opts repository.LogQueryOptions) ([]*repository.LogEntryDocument, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	docs, _ := args.Get(0).([]*repository.LogEntryDocument)
	return docs, args.Error(1)
}

func (m *MockLogsRepository) Count(ctx context.Context, opts repository.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

func TestLoggingService_CreateLog(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	existingID := primitive.NewObjectID()

	tests := []struct {
		name      string
		entry     *model.LogEntry
		setupMock func(*MockLogsRepository)
		wantErr   bool
		verify    func(*testing.T, *model.LogEntry)
	}{
		{
			name:  "assigns id and timestamp",
			entry: &model.LogEntry{Level: "info", Message: "listing created"},
			setupMock: func(m *MockLogsRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(doc *repository.LogEntryDocument) bool {
					return !doc.ID.IsZero() && doc.Timestamp.Equal(fixed)
				})).Return(nil)
			},
			verify: func(t *testing.T, e *model.LogEntry) {
				assert.False(t, e.ID.IsZero())
				assert.Equal(t, fixed, e.Timestamp)
			},
		},
		{
			name:  "keeps existing id",
			entry: &model.LogEntry{ID: existingID, Level: "info"},
			setupMock: func(m *MockLogsRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(doc *repository.LogEntryDocument) bool {
					return doc.ID == existingID
				})).Return(nil)
			},
		},
		{
			name: "maps audit fields",
			entry: &model.LogEntry{
				Level:      "info",
				Subject:    "admin@example.com",
				ActionType: model.ActionOrderCreated,
				Fields:     map[string]any{"order_id": int64(3)},
			},
			setupMock: func(m *MockLogsRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(doc *repository.LogEntryDocument) bool {
					return doc.Subject == "admin@example.com" &&
						doc.ActionType == model.ActionOrderCreated &&
						doc.Fields["order_id"] == int64(3)
				})).Return(nil)
			},
		},
		{
			name:  "repository error",
			entry: &model.LogEntry{Level: "info"},
			setupMock: func(m *MockLogsRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockLogsRepository)
			tt.setupMock(repo)
			svc := &LoggingServiceImpl{repo: repo, now: func() time.Time { return fixed }}

			err := svc.CreateLog(context.Background(), tt.entry)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			if tt.verify != nil {
				tt.verify(t, tt.entry)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestLoggingService_CreateLogs(t *testing.T) {
	tests := []struct {
		name      string
		entries   []*model.LogEntry
		setupMock func(*MockLogsRepository)
		wantErr   bool
	}{
		{
			name:    "bulk insert",
			entries: []*model.LogEntry{{Level: "info"}, {Level: "error"}},
			setupMock: func(m *MockLogsRepository) {
				m.On("CreateMany", mock.Anything, mock.MatchedBy(func(docs []*repository.LogEntryDocument) bool {
					return len(docs) == 2 && docs[1].Level == "error"
				})).Return(nil)
			},
		},
		{
			name:      "empty is a no-op",
			entries:   nil,
			setupMock: func(*MockLogsRepository) {},
		},
		{
			name:    "repository error",
			entries: []*model.LogEntry{{Level: "info"}},
			setupMock: func(m *MockLogsRepository) {
				m.On("CreateMany", mock.Anything, mock.Anything).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockLogsRepository)
			tt.setupMock(repo)
			svc := NewLoggingService(repo)

			err := svc.CreateLogs(context.Background(), tt.entries)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestLoggingService_QueryLogs(t *testing.T) {
	start := time.Now().Add(-time.Hour)

	tests := []struct {
		name      string
		opts      model.LogQueryOptions
		setupMock func(*MockLogsRepository)
		wantCount int
		wantErr   bool
	}{
		{
			name: "forwards every filter",
			opts: model.LogQueryOptions{
				RequestID:  "req-1",
				ActionType: model.ActionListingCreated,
				Subject:    "ops",
				StartTime:  &start,
				Limit:      20,
				Skip:       40,
			},
			setupMock: func(m *MockLogsRepository) {
				m.On("Query", mock.Anything, repository.LogQueryOptions{
					RequestID:  "req-1",
					ActionType: model.ActionListingCreated,
					Subject:    "ops",
					StartTime:  &start,
					Limit:      20,
					Skip:       40,
				}).Return([]*repository.LogEntryDocument{
					{ID: primitive.NewObjectID(), RequestID: "req-1", ActionType: model.ActionListingCreated},
				}, nil)
			},
			wantCount: 1,
		},
		{
			name: "repository error",
			setupMock: func(m *MockLogsRepository) {
				m.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockLogsRepository)
			tt.setupMock(repo)
			svc := NewLoggingService(repo)

			entries, err := svc.QueryLogs(context.Background(), tt.opts)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, entries)
			} else {
				require.NoError(t, err)
				assert.Len(t, entries, tt.wantCount)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestLoggingService_CountLogs(t *testing.T) {
	repo := new(MockLogsRepository)
	repo.On("Count", mock.Anything, mock.MatchedBy(func(opts repository.LogQueryOptions) bool {
		return opts.Level == "error" && opts.ActionType == model.ActionPriceCalculated
	})).Return(int64(5), nil)
	svc := NewLoggingService(repo)

	n, err := svc.CountLogs(context.Background(), model.LogQueryOptions{Level: "error", ActionType: model.ActionPriceCalculated})

	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	repo.AssertExpectations(t)
}

func TestLoggingService_DocumentRoundTrip(t *testing.T) {
	svc := &LoggingServiceImpl{now: time.Now}
	entry := &model.LogEntry{
		Level:      "error",
		Message:    "catalog unavailable",
		RequestID:  "req-123",
		Method:     "GET",
		Path:       "/api/products/4",
		StatusCode: 502,
		Duration:   120,
		IP:         "127.0.0.1",
		UserAgent:  "test-agent",
		Error:      "catalog unavailable",
		Subject:    "storefront-web",
		ActionType: model.ActionListingRevealed,
		Fields:     map[string]any{"session_id": "s1"},
	}

	got := toModel(svc.toDocument(entry))

	assert.Equal(t, *entry, got)
}
