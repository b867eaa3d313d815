// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultCatalogURL       = "https://raw.githubusercontent.com/CodingKitten-YT/KittenGames-gamelibrary/main/games.json"
	DefaultCatalogTimeout   = Duration(30 * time.Second)
	DefaultFetchTimeout     = Duration(10 * time.Second)
	DefaultMaxDocumentBytes = 1 << 20
	DefaultFaviconService   = "https://icons.duckduckgo.com/ip3/%s.ico"
	DefaultDocumentTitle    = "KittenGames"
	DefaultDocumentIcon     = "/favicon.ico"
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "5s", "1m", "1h30m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '5s', '1m', '1h30m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config represents the kittengames configuration.
type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Themes   ThemesConfig   `toml:"themes"`
	Cloak    CloakConfig    `toml:"cloak"`
	Document DocumentConfig `toml:"document"`
}

// StorageConfig locates persisted state.
type StorageConfig struct {
	Dir string `toml:"dir"` // Empty = DataPath()
}

// CatalogConfig configures the game library fetch.
type CatalogConfig struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
}

// ThemesConfig holds custom theme loader limits.
type ThemesConfig struct {
	FetchTimeout     Duration `toml:"fetch_timeout"`
	MaxDocumentBytes int64    `toml:"max_document_bytes"`
}

// CloakConfig holds cloak settings.
type CloakConfig struct {
	FaviconService string `toml:"favicon_service"` // fmt template taking the host name
}

// DocumentConfig holds the original page title and icon restored when the cloak is removed.
type DocumentConfig struct {
	Title string `toml:"title"`
	Icon  string `toml:"icon"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			URL:     DefaultCatalogURL,
			Timeout: DefaultCatalogTimeout,
		},
		Themes: ThemesConfig{
			FetchTimeout:     DefaultFetchTimeout,
			MaxDocumentBytes: DefaultMaxDocumentBytes,
		},
		Cloak: CloakConfig{
			FaviconService: DefaultFaviconService,
		},
		Document: DocumentConfig{
			Title: DefaultDocumentTitle,
			Icon:  DefaultDocumentIcon,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "kittengames", "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "kittengames")
}

// StorageDir returns the configured storage directory, or DataPath().
func (c *Config) StorageDir() string {
	if c.Storage.Dir != "" {
		return c.Storage.Dir
	}
	return DataPath()
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
