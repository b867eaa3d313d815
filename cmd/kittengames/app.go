package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/kittengames/internal/adapter/output"
	"github.com/jmylchreest/kittengames/internal/catalog"
	"github.com/jmylchreest/kittengames/internal/cloak"
	"github.com/jmylchreest/kittengames/internal/config"
	"github.com/jmylchreest/kittengames/internal/customtheme"
	"github.com/jmylchreest/kittengames/internal/document"
	"github.com/jmylchreest/kittengames/internal/model"
	"github.com/jmylchreest/kittengames/internal/settings"
	"github.com/jmylchreest/kittengames/internal/store"
	"github.com/jmylchreest/kittengames/internal/theme"
)

// app wires the stores and the document for one invocation.
type app struct {
	kv       *store.FileKV
	doc      *document.Document
	customs  *customtheme.Cache
	settings *settings.Store
	cloak    *cloak.Store
	catalog  *catalog.Client
	logger   *slog.Logger
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dir := cfg.StorageDir()
	if dir == "" {
		return nil, errors.New("unable to determine storage directory")
	}

	kv, err := store.NewFileKV(dir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	customs, err := customtheme.NewCache(kv, logger)
	if err != nil {
		return nil, fmt.Errorf("load custom themes: %w", err)
	}

	loader := customtheme.NewLoader(customtheme.LoaderOptions{
		Timeout:  cfg.Themes.FetchTimeout.Duration(),
		MaxBytes: cfg.Themes.MaxDocumentBytes,
		Logger:   logger,
	})

	doc := document.New(cfg.Document.Title, cfg.Document.Icon)

	settingsStore, err := settings.NewStore(kv, customs, loader, doc, logger)
	if err != nil {
		return nil, err
	}

	cloakStore, err := cloak.NewStore(kv, doc, cfg.Cloak.FaviconService, logger)
	if err != nil {
		return nil, err
	}

	return &app{
		kv:       kv,
		doc:      doc,
		customs:  customs,
		settings: settingsStore,
		cloak:    cloakStore,
		catalog:  catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.Timeout.Duration(), logger),
		logger:   logger,
	}, nil
}

// reload re-reads the state behind a changed key.
func (a *app) reload(key string) error {
	switch key {
	case store.KeySettings, store.KeyCustomThemes:
		return a.settings.Reload()
	case store.KeyCloak:
		return a.cloak.Reload()
	default:
		return nil
	}
}

// themeEntries lists the built-in themes followed by cached custom themes.
func (a *app) themeEntries() []output.ThemeEntry {
	active := a.settings.Active()
	activeID := ""
	switch active.Source {
	case theme.SourceBuiltin:
		activeID = active.ID
	case theme.SourceFallback:
		activeID = theme.DefaultThemeName
	}

	var entries []output.ThemeEntry
	for _, id := range theme.ListBuiltin() {
		t, _ := theme.GetBuiltin(id)
		entries = append(entries, output.ThemeEntry{
			ID:          id,
			Name:        t.Name,
			ColorScheme: t.ColorScheme,
			Source:      string(theme.SourceBuiltin),
			Active:      id == activeID,
			Colors:      t.Colors,
		})
	}

	customs := a.customs.All()
	for _, url := range a.customs.URLs() {
		t := customs[url]
		entries = append(entries, output.ThemeEntry{
			ID:          model.CustomThemeID,
			Name:        t.Name,
			ColorScheme: t.ColorScheme,
			Source:      string(theme.SourceCustom),
			URL:         url,
			Active:      active.Source == theme.SourceCustom && active.URL == url,
			Colors:      t.Colors,
		})
	}

	return entries
}

// activeEntry describes the theme currently in effect.
func (a *app) activeEntry() output.ThemeEntry {
	res := a.settings.Active()
	id := res.ID
	if res.Source == theme.SourceFallback {
		id = theme.DefaultThemeName
	}
	return output.ThemeEntry{
		ID:          id,
		Name:        res.Theme.Name,
		ColorScheme: res.Theme.ColorScheme,
		Source:      string(res.Source),
		URL:         res.URL,
		Active:      true,
		Colors:      res.Theme.Colors,
	}
}

// lookupTheme finds a built-in theme by id or a cached custom theme by URL.
func (a *app) lookupTheme(ref string) (output.ThemeEntry, bool) {
	for _, e := range a.themeEntries() {
		if (e.Source == string(theme.SourceBuiltin) && e.ID == ref) || (e.URL != "" && e.URL == ref) {
			return e, true
		}
	}
	return output.ThemeEntry{}, false
}

func (a *app) cloakView() output.CloakView {
	return output.CloakView{Cloak: a.cloak.Get(), IconHref: a.cloak.IconHref()}
}

func (a *app) status() output.Status {
	keys := []string{store.KeySettings, store.KeyCustomThemes, store.KeyCloak}
	ks := make([]output.KeyStatus, 0, len(keys))
	for _, key := range keys {
		saved, err := a.kv.ModTime(key)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			a.logger.Warn("failed to stat stored key", "key", key, "error", err)
		}
		ks = append(ks, output.KeyStatus{Key: key, Present: err == nil, Saved: saved})
	}

	return output.Status{
		StorageDir:   a.kv.Dir(),
		Settings:     a.settings.Get(),
		ActiveTheme:  a.activeEntry(),
		CustomThemes: a.customs.Len(),
		Cloak:        a.cloakView(),
		Keys:         ks,
	}
}
