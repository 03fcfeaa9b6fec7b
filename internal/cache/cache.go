// Package cache provides a small expiring key-value store and a caching
// decorator for the weather gateway.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// TTLStore is a concurrency-safe key-value store where each entry carries
// its own expiry. Expired entries are dropped lazily on access; no other
// eviction policy is applied.
type TTLStore struct {
	mu      sync.RWMutex
	entries map[string]entry

	hits   int
	misses int
}

// NewTTLStore creates an empty store.
func NewTTLStore() *TTLStore {
	return &TTLStore{entries: make(map[string]entry)}
}

// Get returns the live value for key, or false when absent or expired.
func (s *TTLStore) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if ok && time.Now().Before(e.expiresAt) {
		s.mu.Lock()
		s.hits++
		s.mu.Unlock()
		return e.value, true
	}

	s.mu.Lock()
	s.misses++
	if ok {
		delete(s.entries, key)
	}
	s.mu.Unlock()
	return nil, false
}

// Set stores value under key for the given ttl. A non-positive ttl stores
// nothing.
func (s *TTLStore) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
}

// Stats returns the hit and miss counters.
func (s *TTLStore) Stats() (hits, misses int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits, s.misses
}
