package cache

import "sync"

// Store is a thread-safe in-memory key/value store with whole-store
// invalidation. It is intentionally unbounded: callers cache small,
// recomputable values (one entry per active user) and clear the store
// explicitly when the underlying configuration changes.
type Store[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// NewStore creates an empty store.
func NewStore[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		items: make(map[K]V),
	}
}

// Get retrieves a value by key.
// Returns the value and true if found, zero value and false otherwise.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok
}

// Set adds or replaces the value for key.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Delete removes a single key.
// Returns the removed value and true if it existed.
func (s *Store[K, V]) Delete(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[key]
	if ok {
		delete(s.items, key)
	}
	return v, ok
}

// Len returns the number of cached entries.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Clear drops every entry. Subsequent Gets miss until values are recomputed.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[K]V)
}
