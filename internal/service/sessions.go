package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/storefront-service/internal/domain/model"
	"github.com/guttosm/storefront-service/internal/listing"
	"github.com/guttosm/storefront-service/internal/metrics"
	"github.com/guttosm/storefront-service/internal/service/cache"
)

// ErrSessionNotFound is returned for unknown or expired listing sessions.
var ErrSessionNotFound = errors.New("listing session not found")

// ProductSession is a listing session over catalog products.
type ProductSession = listing.Session[model.Product]

// SessionStore keeps listing sessions by id. Sessions idle for longer than the
// TTL, or pushed out by capacity, are closed.
type SessionStore struct {
	sessions cache.Cache[string, *ProductSession]
	newID    func() string
}

// NewSessionStore creates a store holding up to capacity sessions.
func NewSessionStore(capacity int, ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: cache.NewTTL(cache.Config[string, *ProductSession]{
			Name:     "listing_sessions",
			Capacity: capacity,
			TTL:      ttl,
			OnEvict: func(_ string, s *ProductSession) {
				s.Close()
			},
		}),
		newID: uuid.NewString,
	}
}

// Put stores s under a fresh id and returns the id.
func (st *SessionStore) Put(s *ProductSession) string {
	id := st.newID()
	st.sessions.Set(id, s)
	metrics.SetListingSessions(st.sessions.Len())
	return id
}

// Get returns the session for id. A hit refreshes the session's TTL.
func (st *SessionStore) Get(id string) (*ProductSession, error) {
	s, ok := st.sessions.Get(id)
	if !ok {
		metrics.SetListingSessions(st.sessions.Len())
		return nil, ErrSessionNotFound
	}
	st.sessions.Set(id, s)
	return s, nil
}

// Delete closes and forgets the session for id.
func (st *SessionStore) Delete(id string) bool {
	if _, ok := st.sessions.Get(id); !ok {
		return false
	}
	st.sessions.Invalidate(id)
	metrics.SetListingSessions(st.sessions.Len())
	return true
}

// Len returns the number of stored sessions.
func (st *SessionStore) Len() int {
	return st.sessions.Len()
}

// Stop closes every session and stops the expiry sweeper.
func (st *SessionStore) Stop() {
	st.sessions.Clear()
	st.sessions.Stop()
	metrics.SetListingSessions(0)
}
