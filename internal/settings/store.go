// Package settings holds the active theme selection, persists it, and
// applies the resolved theme to the document after every change.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/kittengames/internal/customtheme"
	"github.com/jmylchreest/kittengames/internal/model"
	"github.com/jmylchreest/kittengames/internal/store"
	"github.com/jmylchreest/kittengames/internal/theme"
)

// ThemeApplier receives the resolved theme after every change.
type ThemeApplier interface {
	ApplyTheme(t *model.Theme)
}

// Fetcher retrieves and validates a custom theme document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*model.Theme, error)
}

// ErrNoCustomTheme is returned by Refresh when no custom theme is active.
var ErrNoCustomTheme = errors.New("no custom theme is active")

// Store manages the persisted settings and the custom theme cache.
type Store struct {
	mu       sync.RWMutex
	settings model.Settings
	active   theme.Resolution

	kv      store.KV
	cache   *customtheme.Cache
	fetcher Fetcher
	applier ThemeApplier
	logger  *slog.Logger
}

// NewStore hydrates settings from kv and applies the resolved theme.
// applier may be nil.
func NewStore(kv store.KV, cache *customtheme.Cache, fetcher Fetcher, applier ThemeApplier, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		kv:      kv,
		cache:   cache,
		fetcher: fetcher,
		applier: applier,
		logger:  logger,
	}
	if err := s.hydrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// hydrate reads settings from storage, falling back to defaults.
func (s *Store) hydrate() error {
	loaded := model.DefaultSettings()
	if _, err := store.LoadJSON(s.kv, store.KeySettings, &loaded); err != nil {
		if !errors.Is(err, store.ErrCorrupt) {
			return fmt.Errorf("load settings: %w", err)
		}
		s.logger.Warn("stored settings are corrupt, using defaults", "error", err)
		loaded = model.DefaultSettings()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = loaded
	s.applyLocked()
	return nil
}

// Reload re-reads settings and the custom theme cache from storage.
func (s *Store) Reload() error {
	if err := s.cache.Reload(); err != nil {
		return fmt.Errorf("reload custom themes: %w", err)
	}
	return s.hydrate()
}

// Get returns the current settings.
func (s *Store) Get() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update merges patch into the settings, persists the result and re-applies
// the theme. The theme id is not validated; unknown ids resolve to the default.
func (s *Store) Update(patch model.SettingsPatch) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := patch.Apply(s.settings)
	if err := store.SaveJSON(s.kv, store.KeySettings, merged); err != nil {
		return s.settings, fmt.Errorf("save settings: %w", err)
	}
	s.settings = merged
	s.applyLocked()

	s.logger.Debug("settings updated", "theme", merged.Theme, "custom_url", merged.CustomThemeURL)
	return merged, nil
}

// Active returns the current theme resolution.
func (s *Store) Active() theme.Resolution {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := s.active
	res.Theme = res.Theme.Clone()
	return res
}

// Resolve returns the theme currently in effect.
func (s *Store) Resolve() *model.Theme {
	return s.Active().Theme
}

// applyLocked resolves the theme and hands it to the applier.
// Callers must hold s.mu for writing.
func (s *Store) applyLocked() {
	s.active = theme.Resolve(s.settings, s.cache)

	if s.active.Source == theme.SourceFallback {
		s.logger.Debug("theme not found, using default", "theme", s.settings.Theme)
	}
	if s.applier != nil {
		s.applier.ApplyTheme(s.active.Theme.Clone())
	}
}

// CustomThemes returns every cached custom theme keyed by source URL.
func (s *Store) CustomThemes() map[string]*model.Theme {
	return s.cache.All()
}

// LoadCustomTheme fetches the theme at url and adds it to the cache.
// It does not activate the theme; use Update with model.SelectCustom for that.
// On failure nothing is changed.
//
// The fetch runs without holding the store lock. A fetch that completes after
// the settings have moved on still updates the cache.
func (s *Store) LoadCustomTheme(ctx context.Context, url string) (*model.Theme, error) {
	t, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cache.Put(url, t); err != nil {
		return nil, fmt.Errorf("cache custom theme: %w", err)
	}
	// The cache changed, so the active theme may have too.
	s.applyLocked()
	return t.Clone(), nil
}

// RemoveCustomTheme deletes a cached custom theme. If it is the active
// custom theme, the settings are reset to defaults so they never reference a
// deleted theme. Removing an unknown URL is a no-op.
func (s *Store) RemoveCustomTheme(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.cache.Remove(url)
	if err != nil {
		return fmt.Errorf("remove custom theme: %w", err)
	}

	if url != "" && s.settings.CustomThemeURL == url {
		defaults := model.DefaultSettings()
		if err := store.SaveJSON(s.kv, store.KeySettings, defaults); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		s.settings = defaults
		s.logger.Info("active custom theme removed, reverting to default", "url", url)
	}

	if removed {
		s.logger.Debug("custom theme removed", "url", url)
	}
	s.applyLocked()
	return nil
}

// Refresh re-fetches the active custom theme, as the launcher does on
// start-up. On failure the cached copy stays in use and the error is returned.
func (s *Store) Refresh(ctx context.Context) error {
	url := s.Get().CustomThemeURL
	if url == "" {
		return ErrNoCustomTheme
	}

	if _, err := s.LoadCustomTheme(ctx, url); err != nil {
		s.logger.Warn("failed to refresh custom theme, keeping cached copy", "url", url, "error", err)
		return err
	}
	return nil
}
