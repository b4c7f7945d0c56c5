// Package storagetest provides a storage.Store with injectable failures for tests.
package storagetest

import (
	"context"
	"sync"

	"github.com/hookchat/hookchat/internal/storage"
)

// Store wraps an in-memory store and fails operations on demand.
type Store struct {
	*storage.MemoryStore

	mu        sync.Mutex
	GetErr    error
	SetErr    error
	RemoveErr error

	Sets    []string // keys passed to Set, in order
	Removes []string // keys passed to Remove, in order
}

// New returns a Store with no failures configured.
func New() *Store {
	return &Store{MemoryStore: storage.NewMemoryStore()}
}

// Seed writes key directly, bypassing failure injection and call recording.
func (s *Store) Seed(key, value string) {
	s.MemoryStore.Set(context.Background(), key, value)
}

// Get implements storage.Store.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	err := s.GetErr
	s.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return s.MemoryStore.Get(ctx, key)
}

// Set implements storage.Store.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.Sets = append(s.Sets, key)
	err := s.SetErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.MemoryStore.Set(ctx, key, value)
}

// Remove implements storage.Store.
func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	s.Removes = append(s.Removes, key)
	err := s.RemoveErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.MemoryStore.Remove(ctx, key)
}

// Value returns the stored value for key, bypassing failure injection.
func (s *Store) Value(key string) (string, bool) {
	v, ok, _ := s.MemoryStore.Get(context.Background(), key)
	return v, ok
}
