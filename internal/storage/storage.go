// Package storage provides the persistent key-value store that session and
// theme state are kept in. Values are opaque strings; the only operations are
// get, set and remove.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
)

// Store is a string-keyed store of opaque string values.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendPebble = "pebble"
	BackendMemory = "memory"
)

// Backends lists every backend Open understands.
var Backends = []string{BackendFile, BackendPebble, BackendMemory}

// File names inside the data directory
const (
	StateFileName = "state.json"
	PebbleDirName = "state.pebble"
)

// Open returns the store for backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(filepath.Join(dir, StateFileName)), nil
	case BackendPebble:
		return OpenPebble(filepath.Join(dir, PebbleDirName))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Paths returns every on-disk location a backend may use under dir.
func Paths(dir string) []string {
	return []string{
		filepath.Join(dir, StateFileName),
		filepath.Join(dir, PebbleDirName),
	}
}
