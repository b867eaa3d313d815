package customtheme

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/jmylchreest/kittengames/internal/model"
	"github.com/jmylchreest/kittengames/internal/store"
)

// Cache maps source URLs to custom themes and persists every change.
// Entries are never evicted; they are only removed explicitly.
type Cache struct {
	mu     sync.RWMutex
	kv     store.KV
	themes map[string]*model.Theme
	logger *slog.Logger
}

// NewCache creates a cache and hydrates it from kv.
func NewCache(kv store.KV, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Cache{
		kv:     kv,
		themes: make(map[string]*model.Theme),
		logger: logger,
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload replaces the in-memory cache with the persisted one.
// A corrupt stored cache is treated as empty.
func (c *Cache) Reload() error {
	stored := make(map[string]*model.Theme)
	if _, err := store.LoadJSON(c.kv, store.KeyCustomThemes, &stored); err != nil {
		if !errors.Is(err, store.ErrCorrupt) {
			return err
		}
		c.logger.Warn("custom theme cache is corrupt, starting empty", "error", err)
		stored = nil
	}
	// A stored JSON null decodes to a nil map.
	if stored == nil {
		stored = make(map[string]*model.Theme)
	}

	for url, t := range stored {
		if t == nil {
			delete(stored, url)
			continue
		}
		if err := t.Validate(); err != nil {
			c.logger.Warn("dropping invalid cached theme", "url", url, "error", err)
			delete(stored, url)
		}
	}

	c.mu.Lock()
	c.themes = stored
	c.mu.Unlock()
	return nil
}

// Get returns a copy of the theme loaded from url.
func (c *Cache) Get(url string) (*model.Theme, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.themes[url]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// Put stores theme under url, overwriting any previous entry, and persists.
func (c *Cache) Put(url string, theme *model.Theme) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	updated := maps.Clone(c.themes)
	if updated == nil {
		updated = make(map[string]*model.Theme, 1)
	}
	updated[url] = theme.Clone()
	if err := store.SaveJSON(c.kv, store.KeyCustomThemes, updated); err != nil {
		return err
	}
	c.themes = updated
	return nil
}

// Remove deletes the entry for url and persists.
// Returns false without writing if there was no such entry.
func (c *Cache) Remove(url string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.themes[url]; !ok {
		return false, nil
	}

	updated := maps.Clone(c.themes)
	delete(updated, url)
	if err := store.SaveJSON(c.kv, store.KeyCustomThemes, updated); err != nil {
		return false, err
	}
	c.themes = updated
	return true, nil
}

// All returns copies of every cached theme keyed by URL.
func (c *Cache) All() map[string]*model.Theme {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]*model.Theme, len(c.themes))
	for url, t := range c.themes {
		out[url] = t.Clone()
	}
	return out
}

// URLs returns the cached URLs in sorted order.
func (c *Cache) URLs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Sorted(maps.Keys(c.themes))
}

// Len returns the number of cached themes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.themes)
}
