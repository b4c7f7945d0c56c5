package theme

import (
	"context"
	"sync"

	"github.com/hookchat/hookchat/internal/logger"
	"github.com/hookchat/hookchat/internal/storage"
)

// Mode is the active display theme
type Mode string

// The two supported modes
const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Key is the storage key holding the chosen mode
const Key = "theme.mode"

// ParseMode converts a stored or configured string into a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	default:
		return "", false
	}
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// Listener receives the mode after each change
type Listener func(Mode)

// Preference is the injectable theme state service.
type Preference struct {
	store storage.Store

	mu        sync.RWMutex
	mode      Mode
	hydrated  bool
	listeners map[int]Listener
	nextID    int
}

// New creates a preference over the given store. Until Hydrate runs the mode
// is Light and Hydrated reports false.
func New(store storage.Store) *Preference {
	return &Preference{
		store:     store,
		mode:      Light,
		listeners: make(map[int]Listener),
	}
}

// Hydrate adopts the persisted mode when present and valid, otherwise
// systemDefault. Storage errors are logged and fall back to systemDefault.
func (p *Preference) Hydrate(ctx context.Context, systemDefault Mode) {
	log := logger.ComponentLogger("Theme")

	if _, ok := ParseMode(string(systemDefault)); !ok {
		systemDefault = Light
	}
	mode := systemDefault

	v, ok, err := p.store.Get(ctx, Key)
	switch {
	case err != nil:
		log.Error("failed to load theme preference", "error", err)
	case ok:
		if stored, valid := ParseMode(v); valid {
			mode = stored
		} else {
			log.Warn("ignoring invalid stored theme", "value", v)
		}
	}

	p.mu.Lock()
	p.mode = mode
	p.hydrated = true
	p.mu.Unlock()

	log.Debug("theme hydrated", "mode", mode, "systemDefault", systemDefault)
	p.notify(mode)
}

// Toggle flips the mode and persists it. A failed write is logged; the
// in-memory flip stands.
func (p *Preference) Toggle(ctx context.Context) Mode {
	p.mu.Lock()
	p.mode = p.mode.Toggle()
	mode := p.mode
	p.mu.Unlock()

	if err := p.store.Set(ctx, Key, string(mode)); err != nil {
		logger.ComponentLogger("Theme").Error("failed to save theme preference", "error", err)
	}
	p.notify(mode)
	return mode
}

// Set stores an explicit mode. Used by the CLI; the UI only toggles.
func (p *Preference) Set(ctx context.Context, mode Mode) {
	if _, ok := ParseMode(string(mode)); !ok {
		return
	}
	p.mu.Lock()
	p.mode = mode
	p.hydrated = true
	p.mu.Unlock()

	if err := p.store.Set(ctx, Key, string(mode)); err != nil {
		logger.ComponentLogger("Theme").Error("failed to save theme preference", "error", err)
	}
	p.notify(mode)
}

// Mode returns the active mode
func (p *Preference) Mode() Mode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mode
}

// Colors returns the palette for the active mode
func (p *Preference) Colors() Palette {
	return ColorsFor(p.Mode())
}

// Hydrated reports whether Hydrate has resolved
func (p *Preference) Hydrated() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.hydrated
}

// Subscribe registers fn for future mode changes and returns an unsubscribe func.
func (p *Preference) Subscribe(fn Listener) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

func (p *Preference) notify(mode Mode) {
	p.mu.RLock()
	fns := make([]Listener, 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.RUnlock()

	for _, fn := range fns {
		fn(mode)
	}
}
