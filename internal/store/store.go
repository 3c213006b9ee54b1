// Package store provides the in-memory keyed stores backing the
// simulator. Every store is process-wide shared mutable state: request
// handlers and deferred timer tasks mutate the same maps, so each store
// serializes access behind its own lock and hands out copies, never
// references, to readers.
package store

import "sync"

// Store is a mutex-guarded map from id to record. T is stored by value:
// Get and Snapshot return copies, and all mutation goes through Put,
// Update or DeleteIf under the write lock, so a manual transition racing
// a timer-driven one cannot produce a torn read or a lost update.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// New creates an empty store.
func New[T any]() *Store[T] {
	return &Store[T]{items: make(map[string]T)}
}

// Put inserts or replaces the record for id.
func (s *Store[T]) Put(id string, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = v
}

// Get returns a copy of the record for id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	return v, ok
}

// Update applies fn to the record under the write lock. found reports
// whether id existed; if fn returns an error the mutation is discarded
// and the unmodified record is returned. The returned record is the
// committed copy.
func (s *Store[T]) Update(id string, fn func(*T) error) (v T, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, found = s.items[id]
	if !found {
		return v, false, nil
	}
	if err = fn(&v); err != nil {
		return s.items[id], true, err
	}
	s.items[id] = v
	return v, true, nil
}

// DeleteIf removes the record for id when fn accepts it. found reports
// whether id existed; a non-nil error from fn vetoes the deletion.
func (s *Store[T]) DeleteIf(id string, fn func(T) error) (found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	if !ok {
		return false, nil
	}
	if fn != nil {
		if err := fn(v); err != nil {
			return true, err
		}
	}
	delete(s.items, id)
	return true, nil
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns a copy of all records keyed by id.
func (s *Store[T]) Snapshot() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]T, len(s.items))
	for id, v := range s.items {
		out[id] = v
	}
	return out
}

// Clear removes every record.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
}
