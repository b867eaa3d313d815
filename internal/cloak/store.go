// Package cloak persists the tab disguise (page title and icon override)
// and applies it to the document.
package cloak

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/kittengames/internal/model"
	"github.com/jmylchreest/kittengames/internal/store"
)

// Applier receives cloak side effects.
type Applier interface {
	SetTitle(title string)
	SetIcon(href string)
	// Reload restores the original title and icon.
	Reload()
}

// Store manages the persisted cloak.
type Store struct {
	mu    sync.RWMutex
	cloak model.Cloak

	kv             store.KV
	applier        Applier
	faviconService string
	logger         *slog.Logger
}

// NewStore hydrates the cloak from kv and applies it. applier may be nil.
// An empty faviconService uses DefaultFaviconService.
func NewStore(kv store.KV, applier Applier, faviconService string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if faviconService == "" {
		faviconService = DefaultFaviconService
	}

	s := &Store{
		kv:             kv,
		applier:        applier,
		faviconService: faviconService,
		logger:         logger,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the cloak from storage and applies it.
func (s *Store) Reload() error {
	var loaded model.Cloak
	if _, err := store.LoadJSON(s.kv, store.KeyCloak, &loaded); err != nil {
		if !errors.Is(err, store.ErrCorrupt) {
			return fmt.Errorf("load cloak: %w", err)
		}
		s.logger.Warn("stored cloak is corrupt, ignoring", "error", err)
		loaded = model.Cloak{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLocked(loaded)
	return nil
}

// Get returns the current cloak.
func (s *Store) Get() model.Cloak {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloak
}

// Update merges patch into the cloak, persists it and applies it.
func (s *Store) Update(patch model.CloakPatch) (model.Cloak, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := patch.Apply(s.cloak)
	if err := store.SaveJSON(s.kv, store.KeyCloak, merged); err != nil {
		return s.cloak, fmt.Errorf("save cloak: %w", err)
	}
	s.setLocked(merged)

	s.logger.Debug("cloak updated", "title", merged.PageTitle, "icon", merged.IconURL)
	return merged, nil
}

// Remove deletes the stored cloak and restores the original title and icon.
func (s *Store) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(store.KeyCloak); err != nil {
		return fmt.Errorf("delete cloak: %w", err)
	}
	s.cloak = model.Cloak{}
	if s.applier != nil {
		s.applier.Reload()
	}
	return nil
}

// IconHref returns the href the current icon override resolves to, or "".
func (s *Store) IconHref() string {
	c := s.Get()
	if c.IconURL == "" {
		return ""
	}
	return IconHref(c.IconURL, s.faviconService)
}

// setLocked replaces the cloak and applies it. Overrides that were set
// before and are now cleared are undone by restoring the originals first.
func (s *Store) setLocked(next model.Cloak) {
	previous := s.cloak
	s.cloak = next
	if s.applier != nil && !previous.IsZero() && next != previous {
		s.applier.Reload()
	}
	s.applyLocked()
}

func (s *Store) applyLocked() {
	if s.applier == nil {
		return
	}
	if s.cloak.IconURL != "" {
		s.applier.SetIcon(IconHref(s.cloak.IconURL, s.faviconService))
	}
	if s.cloak.PageTitle != "" {
		s.applier.SetTitle(s.cloak.PageTitle)
	}
}
