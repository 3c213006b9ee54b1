package store

import "sync"

// Log is a mutex-guarded append-only list. Comments, webhook
// registrations and the activity feed are logs, not keyed stores:
// entries are never updated or individually removed.
type Log[T any] struct {
	mu      sync.RWMutex
	entries []T
}

// NewLog creates an empty log.
func NewLog[T any]() *Log[T] {
	return &Log[T]{}
}

// Append adds an entry at the end.
func (l *Log[T]) Append(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, v)
}

// All returns a copy of every entry in insertion order.
func (l *Log[T]) All() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]T, len(l.entries))
	copy(out, l.entries)
	return out
}

// Tail returns a copy of the most recent n entries in insertion order.
func (l *Log[T]) Tail(n int) []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]T, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// Len returns the number of entries.
func (l *Log[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear removes every entry.
func (l *Log[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
