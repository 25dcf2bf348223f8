// Package runner ties the three pipelines together: it runs them
// concurrently, collects their results in a shared store, fans the results
// out to the notifier and builds the final structured response.
package runner

import (
	"log"
	"maps"
	"sync"
)

// Store is a mutex-guarded key/value store shared by the concurrently
// running pipelines. Writes and snapshot reads serialize on one lock;
// contention is low and every operation is short.
type Store struct {
	mu      sync.Mutex
	results map[string]any
	logger  *log.Logger
}

// NewStore creates an empty result store.
func NewStore(logger *log.Logger) *Store {
	return &Store{
		results: make(map[string]any),
		logger:  logger,
	}
}

// Put stores one result, replacing any previous value under the same key.
func (s *Store) Put(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[key] = value
	s.logger.Printf("Stored result for key: %s", key)
}

// Get returns the value stored under key, if any.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.results[key]
	return value, ok
}

// Snapshot returns a copy of all stored results.
func (s *Store) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.results)
}
