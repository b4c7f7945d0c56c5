// Package clipboard copies chat text to and from the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/hookchat/hookchat/internal/logger"
)

// backend is the system clipboard; tests replace it.
type backend struct {
	init  func() error
	write func(data []byte)
	read  func() []byte
}

var system = backend{
	init:  clipboard.Init,
	write: func(data []byte) { clipboard.Write(clipboard.FmtText, data) },
	read:  func() []byte { return clipboard.Read(clipboard.FmtText) },
}

var (
	mu          sync.Mutex
	current     = system
	initialized bool
)

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}
	if err := current.init(); err != nil {
		logger.ComponentLogger("Clipboard").Warn("failed to initialize", "error", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	initialized = true
	return nil
}

// WriteText puts text on the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return err
	}
	current.write([]byte(text))
	logger.ComponentLogger("Clipboard").Debug("copied text", "bytes", len(text))
	return nil
}

// ReadText reads text from the clipboard.
func ReadText() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return "", err
	}
	return string(current.read()), nil
}
