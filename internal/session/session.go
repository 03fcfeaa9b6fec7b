// Package session models per-client display state as explicit objects held
// in a store, instead of ambient process-wide state. The core weather
// packages never touch it.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/botaynabessar/meteo-pro-2.000/internal/weather"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Session is the state the presentation layer carries between requests:
// selected city, unit preference, the comparison list and the last report
// produced for the session.
type Session struct {
	ID               string          `json:"id"`
	City             string          `json:"city"`
	Units            weather.Units   `json:"units"`
	ComparisonCities []string        `json:"comparison_cities"`
	LastReport       *weather.Report `json:"last_report,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Store is a concurrency-safe in-memory session store with age-based
// expiry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	maxAge   time.Duration
}

// NewStore creates a Store. Sessions idle for longer than maxAge are
// dropped; maxAge <= 0 disables expiry.
func NewStore(maxAge time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		maxAge:   maxAge,
	}
}

// Create starts a new session with the given defaults and returns it.
func (s *Store) Create(units weather.Units) Session {
	now := time.Now().UTC()
	sess := Session{
		ID:        uuid.NewString(),
		Units:     units,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.prune(now)
	s.sessions[sess.ID] = &sess
	s.mu.Unlock()

	return sess
}

// Get returns a copy of the session with the given id.
func (s *Store) Get(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess, time.Now()) {
		return Session{}, ErrNotFound
	}
	return *sess, nil
}

// Update applies fn to the session under the store lock and stamps
// UpdatedAt.
func (s *Store) Update(id string, fn func(*Session)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess, time.Now()) {
		return Session{}, ErrNotFound
	}

	fn(sess)
	sess.UpdatedAt = time.Now().UTC()
	return *sess, nil
}

// expired reports whether the session has been idle past maxAge.
func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.maxAge > 0 && now.Sub(sess.UpdatedAt) > s.maxAge
}

// prune removes expired sessions. Callers must hold the write lock.
func (s *Store) prune(now time.Time) {
	if s.maxAge <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}
}
