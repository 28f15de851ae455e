// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Store.Load when nothing is stored under the key.
var ErrNotFound = errors.New("key not found")

// ErrMalformed is returned by LoadJSON when the stored value does not decode.
var ErrMalformed = errors.New("malformed value")

// Keys under which the billing collections are stored.
const (
	KeyMenu    = "hb:menu"
	KeyTables  = "hb:tables"
	KeyWaiters = "hb:waiters"
	KeyUsers   = "hb:users"
	KeyBills   = "hb:bills"
)

// Keys lists every collection key.
var Keys = []string{KeyMenu, KeyTables, KeyWaiters, KeyUsers, KeyBills}

// Store defines a key/value medium holding whole-collection snapshots.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, memory)
// without changing the billing layer.
type Store interface {
	// Load returns the value saved under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save overwrites the value under key.
	Save(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}

// LoadJSON decodes the value under key into a T.
//
// The returned value is always usable: when the key is missing, unreadable
// or malformed, fallback is returned together with an error describing why.
// A missing key is reported as ErrNotFound and a value that does not decode
// as ErrMalformed. Any other error means the store could not be read, and the
// stored value may still be intact.
func LoadJSON[T any](ctx context.Context, s Store, key string, fallback T) (T, error) {
	data, err := s.Load(ctx, key)
	if err != nil {
		return fallback, fmt.Errorf("failed to load %s: %w", key, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return fallback, fmt.Errorf("failed to decode %s: %w: %w", key, ErrMalformed, err)
	}
	return v, nil
}

// SaveJSON encodes v and saves it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Save(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
