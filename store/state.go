// Package store provides in-memory conversation storage: the message log and
// the agent-visible shared state. Both are mutex-guarded so an embedding
// application may read them while an exchange is in flight, but only the
// orchestrator writes to them.
package store

import "sync"

// State is a thread-safe key-value store for agent-visible shared state.
type State struct {
	mu    sync.RWMutex
	items map[string]any
}

// NewState creates an empty State.
func NewState() *State {
	return &State{items: make(map[string]any)}
}

// NewStateFrom creates a State initialized with the given data.
func NewStateFrom(data map[string]any) *State {
	s := NewState()
	for k, v := range data {
		s.items[k] = v
	}
	return s
}

// Get retrieves a value by key.
func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Set stores a value by key.
func (s *State) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Delete removes a key. No-op if the key does not exist.
func (s *State) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Has returns true if the key exists.
func (s *State) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[key]
	return ok
}

// Keys returns all keys in the state.
func (s *State) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of keys.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Merge performs a shallow merge: every top-level key in data overwrites the
// existing value at that key, keys absent from data are left untouched.
func (s *State) Merge(data map[string]any) {
	if len(data) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range data {
		s.items[k] = v
	}
}

// Data returns a shallow copy of the state map.
func (s *State) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data := make(map[string]any, len(s.items))
	for k, v := range s.items {
		data[k] = v
	}
	return data
}

// Clear removes all keys.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]any)
}
