package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/kittengames/internal/model"
)

type mapLookup map[string]*model.Theme

func (m mapLookup) Get(url string) (*model.Theme, bool) {
	t, ok := m[url]
	return t, ok
}

var customTheme = &model.Theme{
	Name:        "Remote",
	ColorScheme: model.ColorSchemeLight,
	Colors:      model.Colors{{Name: "background", Value: "#fafafa"}},
}

func TestResolve_EveryBuiltin(t *testing.T) {
	for _, id := range BundledThemes {
		t.Run(id, func(t *testing.T) {
			want, _ := GetBuiltin(id)

			res := Resolve(model.Settings{Theme: id}, nil)

			assert.Equal(t, SourceBuiltin, res.Source)
			assert.Equal(t, id, res.ID)
			assert.Equal(t, want.Colors, res.Theme.Colors)
		})
	}
}

func TestResolve_UnknownIDFallsBackToDefault(t *testing.T) {
	res := Resolve(model.Settings{Theme: "does-not-exist"}, nil)

	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, "does-not-exist", res.ID)
	assert.Equal(t, Default(), res.Theme)
}

func TestResolve_EmptySettingsFallBack(t *testing.T) {
	res := Resolve(model.Settings{}, nil)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, "Dark", res.Theme.Name)
}

func TestResolve_CustomTakesPrecedence(t *testing.T) {
	url := "https://themes.example.com/remote.json"
	lookup := mapLookup{url: customTheme}

	// Even a valid built-in id loses to a cached custom theme
	res := Resolve(model.Settings{Theme: "nord", CustomThemeURL: url}, lookup)

	assert.Equal(t, SourceCustom, res.Source)
	assert.Equal(t, url, res.URL)
	assert.Equal(t, customTheme, res.Theme)
}

func TestResolve_UncachedCustomURL(t *testing.T) {
	tests := []struct {
		name       string
		settings   model.Settings
		wantSource Source
		wantName   string
	}{
		{
			name:       "falls back to built-in id",
			settings:   model.Settings{Theme: "ocean", CustomThemeURL: "https://missing.test/t.json"},
			wantSource: SourceBuiltin,
			wantName:   "Ocean",
		},
		{
			name:       "custom sentinel falls back to default",
			settings:   model.Settings{Theme: model.CustomThemeID, CustomThemeURL: "https://missing.test/t.json"},
			wantSource: SourceFallback,
			wantName:   "Dark",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.settings, mapLookup{})
			assert.Equal(t, tt.wantSource, res.Source)
			assert.Equal(t, tt.wantName, res.Theme.Name)
		})
	}
}
