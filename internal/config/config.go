package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	herrors "github.com/hookchat/hookchat/internal/errors"
	"github.com/hookchat/hookchat/internal/storage"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "HOOKCHAT_"

// Defaults
const (
	DefaultWebhookURL     = "http://localhost:8787/webhook"
	DefaultRequestTimeout = "30s"
	DefaultStorageBackend = storage.BackendFile
	DefaultTheme          = "dark"
)

// Config holds the application configuration
type Config struct {
	WebhookURL           string `json:"webhook_url" env:"WEBHOOK_URL"`
	RequestTimeout       string `json:"request_timeout" env:"REQUEST_TIMEOUT"` // Go duration, e.g. "30s"
	StorageBackend       string `json:"storage_backend" env:"STORAGE_BACKEND"` // file, pebble or memory
	DataDir              string `json:"data_dir" env:"DATA_DIR"`
	DefaultTheme         string `json:"default_theme" env:"DEFAULT_THEME"` // used when the terminal does not report its background
	LogPath              string `json:"log_path,omitempty" env:"LOG_PATH"`
	NotificationsEnabled bool   `json:"notifications_enabled" env:"NOTIFICATIONS_ENABLED"`
	ConfirmNewChat       bool   `json:"confirm_new_chat" env:"CONFIRM_NEW_CHAT"`

	mu       sync.RWMutex
	filePath string
}

// Dir returns the path to the config directory
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hookchat"), nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns a config populated with defaults only.
func Default() *Config {
	dir, err := Dir()
	if err != nil {
		dir = ".hookchat"
	}
	return &Config{
		WebhookURL:     DefaultWebhookURL,
		RequestTimeout: DefaultRequestTimeout,
		StorageBackend: DefaultStorageBackend,
		DataDir:        dir,
		DefaultTheme:   DefaultTheme,
		ConfirmNewChat: true,
	}
}

// Load builds the config from defaults, the JSON file at path (the default
// location when empty), a .env file in the working directory, and HOOKCHAT_*
// environment variables, in that order. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, herrors.ConfigLoadFailed("~/.hookchat/config.json", err)
		}
		path = p
	}

	cfg := Default()
	cfg.filePath = path

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, herrors.ConfigLoadFailed(path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, herrors.ConfigLoadFailed(path, err)
		}
	}

	if err := LoadDotEnv(".env"); err != nil {
		return nil, herrors.ConfigLoadFailed(".env", err)
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, herrors.ConfigLoadFailed("environment", err)
	}

	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads the given files into the environment without overriding
// variables that are already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// ensureInitialized fills blank fields left by the file or environment with
// defaults and expands a leading ~ in paths.
//
// Thread-safety: only called from Load before the Config is shared.
func (c *Config) ensureInitialized() {
	def := Default()
	if strings.TrimSpace(c.WebhookURL) == "" {
		c.WebhookURL = def.WebhookURL
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.StorageBackend == "" {
		c.StorageBackend = def.StorageBackend
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.DefaultTheme == "" {
		c.DefaultTheme = def.DefaultTheme
	}
	c.WebhookURL = strings.TrimSpace(c.WebhookURL)
	c.DataDir = ExpandHome(c.DataDir)
	c.LogPath = ExpandHome(c.LogPath)
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, err := url.Parse(c.WebhookURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return herrors.ConfigInvalid(fmt.Sprintf("webhook_url %q is not an absolute URL", c.WebhookURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return herrors.ConfigInvalid(fmt.Sprintf("webhook_url scheme %q is not http or https", u.Scheme))
	}

	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return herrors.ConfigInvalid(fmt.Sprintf("request_timeout %q: %v", c.RequestTimeout, err))
	}
	if d <= 0 {
		return herrors.ConfigInvalid(fmt.Sprintf("request_timeout %q must be positive", c.RequestTimeout))
	}

	known := false
	for _, b := range storage.Backends {
		if c.StorageBackend == b {
			known = true
			break
		}
	}
	if !known {
		return herrors.ConfigInvalid(fmt.Sprintf("unknown storage_backend %q (want one of %s)",
			c.StorageBackend, strings.Join(storage.Backends, ", ")))
	}

	if c.DefaultTheme != "light" && c.DefaultTheme != "dark" {
		return herrors.ConfigInvalid(fmt.Sprintf("default_theme %q must be light or dark", c.DefaultTheme))
	}

	if c.DataDir == "" {
		return herrors.ConfigInvalid("data_dir is empty")
	}
	return nil
}

// Save writes the config to its file
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return herrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return herrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return herrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// SetPath changes where Save writes
func (c *Config) SetPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// GetWebhookURL returns the webhook endpoint
func (c *Config) GetWebhookURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WebhookURL
}

// SetWebhookURL sets the webhook endpoint
func (c *Config) SetWebhookURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WebhookURL = strings.TrimSpace(u)
}

// Timeout returns the parsed request timeout, or the default if it does not parse.
func (c *Config) Timeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultRequestTimeout)
	}
	return d
}

// GetStorageBackend returns the configured storage backend
func (c *Config) GetStorageBackend() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.StorageBackend
}

// SetStorageBackend sets the storage backend
func (c *Config) SetStorageBackend(backend string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.StorageBackend = backend
}

// GetDataDir returns the directory holding persisted state
func (c *Config) GetDataDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DataDir
}

// GetDefaultTheme returns the fallback theme mode name
func (c *Config) GetDefaultTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DefaultTheme
}

// GetLogPath returns the configured log file, empty for the default
func (c *Config) GetLogPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LogPath
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetConfirmNewChat returns whether starting a new chat asks for confirmation
func (c *Config) GetConfirmNewChat() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ConfirmNewChat
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
