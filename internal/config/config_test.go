package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultCatalogURL, cfg.Catalog.URL)
	assert.Equal(t, 30*time.Second, cfg.Catalog.Timeout.Duration())
	assert.Equal(t, 10*time.Second, cfg.Themes.FetchTimeout.Duration())
	assert.Equal(t, int64(1<<20), cfg.Themes.MaxDocumentBytes)
	assert.Equal(t, "https://icons.duckduckgo.com/ip3/%s.ico", cfg.Cloak.FaviconService)
	assert.Equal(t, "KittenGames", cfg.Document.Title)
	assert.Equal(t, "/favicon.ico", cfg.Document.Icon)
	assert.Empty(t, cfg.Storage.Dir)
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[storage]
dir = "/tmp/kg"

[catalog]
url = "https://mirror.test/games.json"
timeout = "1m"

[themes]
fetch_timeout = "2500"
max_document_bytes = 4096

[cloak]
favicon_service = "https://favicons.test/%s"

[document]
title = "Launcher"
icon = "/static/cat.png"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/kg", cfg.Storage.Dir)
	assert.Equal(t, "/tmp/kg", cfg.StorageDir())
	assert.Equal(t, "https://mirror.test/games.json", cfg.Catalog.URL)
	assert.Equal(t, time.Minute, cfg.Catalog.Timeout.Duration())
	assert.Equal(t, 2500*time.Millisecond, cfg.Themes.FetchTimeout.Duration())
	assert.Equal(t, int64(4096), cfg.Themes.MaxDocumentBytes)
	assert.Equal(t, "https://favicons.test/%s", cfg.Cloak.FaviconService)
	assert.Equal(t, "Launcher", cfg.Document.Title)
	assert.Equal(t, "/static/cat.png", cfg.Document.Icon)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[document]
title = "Notes"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Notes", cfg.Document.Title)
	// Unspecified values keep defaults
	assert.Equal(t, DefaultDocumentIcon, cfg.Document.Icon)
	assert.Equal(t, DefaultCatalogURL, cfg.Catalog.URL)
	assert.Equal(t, DefaultFetchTimeout, cfg.Themes.FetchTimeout)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("this is not valid toml [[["), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("[catalog]\ntimeout = \"soon\"\n"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "invalid duration")
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Storage.Dir = "/srv/kittengames"
	cfg.Catalog.Timeout = Duration(45 * time.Second)

	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/kittengames/config.toml", ConfigPath())
}

func TestDataPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	assert.Equal(t, "/custom/data/kittengames", DataPath())

	cfg := DefaultConfig()
	assert.Equal(t, "/custom/data/kittengames", cfg.StorageDir())
}
