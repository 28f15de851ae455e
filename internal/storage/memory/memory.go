// Package memory provides an in-process implementation of storage.Store.
// It backs tests and is the fallback when no durable store can be opened.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/hotelbilling/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps values in a map.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty Store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Load returns a copy of the value under key.
func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Save stores a copy of value under key.
func (s *Store) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
