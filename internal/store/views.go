package store

import "sync"

// ViewTable holds the eventual-consistency projections: named views
// ("profile_immediate", "profile_cached", ...) each mapping entity id to
// the payload snapshot taken at write time. Entries are immutable once
// written; later mutations of the source entity never reach a view, so
// readers of the delayed tiers may observe stale data indefinitely.
type ViewTable struct {
	mu    sync.RWMutex
	views map[string]map[string]any
}

// NewViewTable creates an empty view table.
func NewViewTable() *ViewTable {
	return &ViewTable{views: make(map[string]map[string]any)}
}

// Put writes the payload snapshot for id into the named view.
func (t *ViewTable) Put(view, id string, payload any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.views[view]
	if !ok {
		m = make(map[string]any)
		t.views[view] = m
	}
	m[id] = payload
}

// Get returns the payload for id in the named view.
func (t *ViewTable) Get(view, id string) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.views[view][id]
	return v, ok
}

// Values returns every payload in the named view, in unspecified order.
func (t *ViewTable) Values(view string) []any {
	t.mu.RLock()
	defer t.mu.RUnlock()
	m := t.views[view]
	out := make([]any, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// Len returns the number of entries in the named view.
func (t *ViewTable) Len(view string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.views[view])
}

// Clear removes every view.
func (t *ViewTable) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.views = make(map[string]map[string]any)
}
