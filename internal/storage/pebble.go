package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	herrors "github.com/hookchat/hookchat/internal/errors"
	"github.com/hookchat/hookchat/internal/logger"
)

// PebbleStore keeps keys in an embedded pebble database.
type PebbleStore struct {
	db   *pebble.DB
	path string
}

// OpenPebble opens (or creates) a pebble database in dir.
func OpenPebble(dir string) (*PebbleStore, error) {
	log := logger.ComponentLogger("Storage")
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		log.Error("pebble open failed", "path", dir, "error", err)
		return nil, fmt.Errorf("open pebble store %s: %w", dir, err)
	}
	log.Debug("pebble opened", "path", dir)
	return &PebbleStore{db: db, path: dir}, nil
}

// Get implements Store.
func (s *PebbleStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, herrors.StorageReadFailed(key, err)
	}
	v, closer, err := s.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, herrors.StorageReadFailed(key, err)
	}
	// v is only valid until closer.Close()
	value := string(v)
	if err := closer.Close(); err != nil {
		return "", false, herrors.StorageReadFailed(key, err)
	}
	return value, true, nil
}

// Set implements Store.
func (s *PebbleStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return herrors.StorageWriteFailed(key, err)
	}
	if err := s.db.Set([]byte(key), []byte(value), pebble.Sync); err != nil {
		return herrors.StorageWriteFailed(key, err)
	}
	return nil
}

// Remove implements Store.
func (s *PebbleStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return herrors.StorageRemoveFailed(key, err)
	}
	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return herrors.StorageRemoveFailed(key, err)
	}
	return nil
}

// Close implements Store.
func (s *PebbleStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
