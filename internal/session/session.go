package session

import (
	"context"
	"sync"

	"github.com/hookchat/hookchat/internal/logger"
	"github.com/hookchat/hookchat/internal/storage"
)

// Key is the storage key holding the signed-in flag
const Key = "session.logged_in"

// signedInValue is the only stored value that means signed in
const signedInValue = "true"

// Listener receives the signed-in flag after each transition
type Listener func(authenticated bool)

// Store is the injectable session state service.
type Store struct {
	store storage.Store

	mu            sync.RWMutex
	authenticated bool
	hydrated      bool
	listeners     map[int]Listener
	nextID        int
}

// New creates a session store over the given key-value store.
// The result reports signed out until Hydrate completes.
func New(store storage.Store) *Store {
	return &Store{
		store:     store,
		listeners: make(map[int]Listener),
	}
}

// Hydrate loads the persisted flag. It never fails: storage errors are logged
// and resolve to signed out.
func (s *Store) Hydrate(ctx context.Context) {
	log := logger.ComponentLogger("Session")

	authenticated := false
	v, ok, err := s.store.Get(ctx, Key)
	switch {
	case err != nil:
		log.Error("failed to load session flag", "error", err)
	case ok && v == signedInValue:
		authenticated = true
	case ok:
		log.Warn("ignoring unexpected session flag", "value", v)
	}

	s.mu.Lock()
	s.authenticated = authenticated
	s.hydrated = true
	s.mu.Unlock()

	log.Debug("session hydrated", "authenticated", authenticated)
	s.notify(authenticated)
}

// SignIn marks the user signed in and persists the flag.
func (s *Store) SignIn(ctx context.Context) {
	s.set(true)
	if err := s.store.Set(ctx, Key, signedInValue); err != nil {
		logger.ComponentLogger("Session").Error("failed to persist sign-in", "error", err)
	}
}

// SignOut marks the user signed out and removes the persisted flag.
func (s *Store) SignOut(ctx context.Context) {
	s.set(false)
	if err := s.store.Remove(ctx, Key); err != nil {
		logger.ComponentLogger("Session").Error("failed to persist sign-out", "error", err)
	}
}

func (s *Store) set(authenticated bool) {
	s.mu.Lock()
	s.authenticated = authenticated
	s.hydrated = true
	s.mu.Unlock()

	logger.ComponentLogger("Session").Info("session changed", "authenticated", authenticated)
	s.notify(authenticated)
}

// IsAuthenticated returns the in-memory flag
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Hydrated reports whether the persisted flag has been loaded
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Subscribe registers fn for every future transition and returns a function
// that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// notify calls listeners outside the lock so they may read the store.
func (s *Store) notify(authenticated bool) {
	s.mu.RLock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(authenticated)
	}
}
