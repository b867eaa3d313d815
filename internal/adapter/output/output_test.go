package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/kittengames/internal/model"
)

func testThemes() []ThemeEntry {
	return []ThemeEntry{
		{
			ID:          "dark",
			Name:        "Dark",
			ColorScheme: model.ColorSchemeDark,
			Source:      "builtin",
			Active:      true,
			Colors: model.Colors{
				{Name: "background", Value: "#111827"},
				{Name: "primary", Value: "#6366f1"},
			},
		},
		{
			ID:          "custom",
			Name:        "Forest",
			ColorScheme: model.ColorSchemeLight,
			Source:      "custom",
			URL:         "https://themes.test/forest.json",
			Colors: model.Colors{
				{Name: "primary", Value: "#228b22"},
			},
		},
	}
}

func testGames() []model.Game {
	return []model.Game{
		{Name: "Slope", URL: "https://games.test/slope", Image: "https://cdn.test/slope.png", Type: "game"},
		{Name: "Retro  Bowl\n", URL: "https://games.test/retro-bowl", Type: "game"},
	}
}

func noColor() FormatterOptions {
	opts := DefaultFormatterOptions()
	opts.NoColor = true
	return opts
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format   FormatType
		expected interface{}
	}{
		{FormatPlain, &PlainFormatter{}},
		{FormatJSON, &JSONFormatter{}},
		{FormatYAML, &YAMLFormatter{}},
		{FormatDmenu, &DmenuFormatter{}},
		{"unknown", &PlainFormatter{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := NewFormatter(tt.format, DefaultFormatterOptions())
			assert.IsType(t, tt.expected, f)
		})
	}
}

func TestJSONFormatter_Themes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(DefaultFormatterOptions()).Themes(&buf, testThemes()))

	var result []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 2)
	assert.Equal(t, "dark", result[0]["id"])
	assert.Equal(t, true, result[0]["active"])
	assert.Equal(t, "https://themes.test/forest.json", result[1]["url"])
	assert.NotContains(t, result[0], "url")

	// Colour order is preserved in the encoded output
	assert.Less(t, strings.Index(buf.String(), "background"), strings.Index(buf.String(), `"primary"`))
}

func TestJSONFormatter_EmptyListIsArray(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(DefaultFormatterOptions())

	require.NoError(t, f.Games(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestJSONFormatter_Cloak(t *testing.T) {
	var buf bytes.Buffer
	view := CloakView{
		Cloak:    model.Cloak{IconURL: "example.com", PageTitle: "Classes"},
		IconHref: "https://icons.duckduckgo.com/ip3/example.com.ico",
	}
	require.NoError(t, NewJSONFormatter(DefaultFormatterOptions()).Cloak(&buf, view))

	assert.JSONEq(t, `{
		"iconUrl": "example.com",
		"pageTitle": "Classes",
		"iconHref": "https://icons.duckduckgo.com/ip3/example.com.ico"
	}`, buf.String())
}

func TestYAMLFormatter_Theme(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(DefaultFormatterOptions()).Theme(&buf, testThemes()[0]))

	expected := `id: dark
name: Dark
colorScheme: dark
source: builtin
active: true
colors:
  background: "#111827"
  primary: "#6366f1"
`
	assert.Equal(t, expected, buf.String())
}

func TestYAMLFormatter_CloakInline(t *testing.T) {
	var buf bytes.Buffer
	view := CloakView{Cloak: model.Cloak{PageTitle: "Docs"}}
	require.NoError(t, NewYAMLFormatter(DefaultFormatterOptions()).Cloak(&buf, view))

	var result map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "Docs", result["pageTitle"])
	assert.NotContains(t, result, "iconHref")
}

func TestPlainFormatter_Themes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(noColor()).Themes(&buf, testThemes()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "* ")
	assert.Contains(t, lines[0], "Dark")
	assert.Contains(t, lines[1], "Forest")
	assert.Contains(t, lines[1], "https://themes.test/forest.json")
}

func TestPlainFormatter_Theme(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(noColor()).Theme(&buf, testThemes()[0]))

	out := buf.String()
	assert.Contains(t, out, "Dark")
	assert.Contains(t, out, "(dark, builtin)")
	assert.Contains(t, out, "  background #111827\n")
	assert.Contains(t, out, "  primary    #6366f1\n")
}

func TestPlainFormatter_Games(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(noColor()).Games(&buf, testGames()[:1]))
	assert.Equal(t, "[1] Slope\n    https://games.test/slope\n", buf.String())
}

func TestPlainFormatter_Cloak(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainFormatter(noColor())

	require.NoError(t, f.Cloak(&buf, CloakView{}))
	assert.Equal(t, "no cloak set\n", buf.String())

	buf.Reset()
	require.NoError(t, f.Cloak(&buf, CloakView{Cloak: model.Cloak{PageTitle: "Classes"}}))
	assert.Contains(t, buf.String(), "Classes")
	assert.Contains(t, buf.String(), "(none)")
}

func TestPlainFormatter_Status(t *testing.T) {
	var buf bytes.Buffer
	status := Status{
		StorageDir:   "/data/kittengames",
		Settings:     model.DefaultSettings(),
		ActiveTheme:  testThemes()[0],
		CustomThemes: 2,
		Keys: []KeyStatus{
			{Key: "kittengames-settings", Present: true, Saved: time.Now().Add(-3 * time.Hour)},
			{Key: "kittengames-cloak"},
		},
	}
	require.NoError(t, NewPlainFormatter(noColor()).Status(&buf, status))

	out := buf.String()
	assert.Contains(t, out, "/data/kittengames")
	assert.Contains(t, out, "Dark (builtin)")
	assert.Contains(t, out, "2 cached")
	assert.Contains(t, out, "saved 3 hours ago")
	assert.Contains(t, out, "not saved")
}

func TestDmenuFormatter_Games(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDmenuFormatter(DefaultFormatterOptions()).Games(&buf, testGames()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1 | Slope | https://games.test/slope", lines[0])
	assert.Equal(t, "2 | Retro Bowl | https://games.test/retro-bowl", lines[1])
}

func TestDmenuFormatter_CustomTemplate(t *testing.T) {
	opts := DefaultFormatterOptions()
	opts.Template = "{{.Index}}: {{.Item.Name | lower}}"

	var buf bytes.Buffer
	require.NoError(t, NewDmenuFormatter(opts).Themes(&buf, testThemes()))
	assert.Equal(t, "1: dark\n2: forest\n", buf.String())
}

func TestDmenuFormatter_SingleViewsUsePlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDmenuFormatter(DefaultFormatterOptions()).Cloak(&buf, CloakView{}))
	assert.Equal(t, "no cloak set\n", buf.String())
}

func TestSanitizeField(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"simple", 0, "simple"},
		{"line1\nline2", 0, "line1 line2"},
		{"too   many   spaces", 0, "too many spaces"},
		{"a very long game name", 10, "a very..."},
		{"abcdef", 3, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeField(tt.input, tt.maxLen))
		})
	}
}
