package tokenstore

import (
	"context" // Store contract
	"sync"    // Guards values
)

// MemoryStore keeps the token for the life of the process.
type MemoryStore struct {
	mu     sync.Mutex        // Protects values
	values map[string]string // Keyed by Key
}

// NewMemoryStore returns an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Set stores the token, replacing any previous one
func (s *MemoryStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[Key] = token
	return nil
}

// Get returns the token or an empty string
func (s *MemoryStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[Key], nil // Zero value when unset
}

// Delete forgets the token
func (s *MemoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, Key)
	return nil
}
