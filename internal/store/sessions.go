// Package store keeps live quiz sessions in memory. Sessions expire after a
// TTL and the store holds at most a fixed number, evicting the oldest first.
// Nothing is persisted; a restart forgets all sessions.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/greenlab/ecotools/internal/quiz"
)

// ErrNotFound is returned when no live session exists for an id.
var ErrNotFound = errors.New("no session with that id")

// Entry pairs a session with its lifecycle metadata.
type Entry struct {
	ID        string
	BankName  string
	Session   *quiz.Session
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionStore is a concurrency-safe in-memory session registry.
type SessionStore struct {
	mu   sync.RWMutex
	data map[string]*Entry

	ttl         time.Duration
	maxSessions int
}

// NewSessionStore creates a store. Sessions live for ttl (<= 0 means no
// expiry); maxSessions <= 0 means unlimited.
func NewSessionStore(ttl time.Duration, maxSessions int) *SessionStore {
	return &SessionStore{
		data:        make(map[string]*Entry),
		ttl:         ttl,
		maxSessions: maxSessions,
	}
}

// Create registers a session under a fresh uuid and returns its entry.
// At capacity the oldest session is evicted first.
func (s *SessionStore) Create(bankName string, sess *quiz.Session) *Entry {
	now := time.Now().UTC()
	e := &Entry{
		ID:        uuid.NewString(),
		BankName:  bankName,
		Session:   sess,
		CreatedAt: now,
	}
	if s.ttl > 0 {
		e.ExpiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.data) >= s.maxSessions {
		s.evictOldestLocked()
	}
	s.data[e.ID] = e
	return e
}

func (s *SessionStore) evictOldestLocked() {
	var oldestID string
	var oldestAt time.Time
	for id, e := range s.data {
		if oldestID == "" || e.CreatedAt.Before(oldestAt) {
			oldestID = id
			oldestAt = e.CreatedAt
		}
	}
	if oldestID != "" {
		delete(s.data, oldestID)
	}
}

// Get returns a live session. Expired sessions are dropped lazily here in
// addition to the periodic prune.
func (s *SessionStore) Get(id string) (*Entry, error) {
	s.mu.RLock()
	e, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	if !e.ExpiresAt.IsZero() && time.Now().UTC().After(e.ExpiresAt) {
		s.mu.Lock()
		delete(s.data, id)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	return e, nil
}

// Delete removes a session explicitly.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}

// PruneExpired drops every expired session and reports how many went.
func (s *SessionStore) PruneExpired() int {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for id, e := range s.data {
		if !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt) {
			delete(s.data, id)
			pruned++
		}
	}
	return pruned
}

// Len reports the number of stored sessions, expired ones included until the
// next prune.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
