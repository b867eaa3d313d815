package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testTheme() *Theme {
	return &Theme{
		Name:        "Test",
		ColorScheme: ColorSchemeDark,
		Colors: Colors{
			{Name: "background", Value: "#111827"},
			{Name: "foreground", Value: "#ffffff"},
			{Name: "card-hover", Value: "#374151"},
		},
	}
}

func TestColors_JSONPreservesOrder(t *testing.T) {
	input := `{"zeta":"#000000","alpha":"#ffffff","card-hover":"#123456"}`

	var colors Colors
	require.NoError(t, json.Unmarshal([]byte(input), &colors))
	assert.Equal(t, []string{"zeta", "alpha", "card-hover"}, colors.Names())

	out, err := json.Marshal(colors)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
	assert.Equal(t, input, string(out))
}

func TestColors_UnmarshalDuplicateKeyKeepsFirstPosition(t *testing.T) {
	var colors Colors
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1","b":"2","a":"3"}`), &colors))

	assert.Equal(t, []string{"a", "b"}, colors.Names())
	v, ok := colors.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestColors_UnmarshalShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"array", `["#fff"]`, ErrColorsNotObject},
		{"string", `"#fff"`, ErrColorsNotObject},
		{"number value", `{"background": 12}`, ErrColorNotString},
		{"nested object", `{"background": {"r": 1}}`, ErrColorNotString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var colors Colors
			err := json.Unmarshal([]byte(tt.input), &colors)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidTheme)
		})
	}
}

func TestColors_UnmarshalSyntaxErrorIsNotValidation(t *testing.T) {
	var theme Theme
	err := json.Unmarshal([]byte(`{"colors": {"a": "1",}}`), &theme)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidTheme))
}

func TestColors_YAMLPreservesOrder(t *testing.T) {
	data, err := yaml.Marshal(testTheme())
	require.NoError(t, err)

	expected := `name: Test
colorScheme: dark
colors:
    background: "#111827"
    foreground: "#ffffff"
    card-hover: "#374151"
`
	assert.Equal(t, expected, string(data))
}

func TestColors_With(t *testing.T) {
	base := Colors{{Name: "a", Value: "1"}}

	updated := base.With("a", "2").With("b", "3")

	assert.Equal(t, Colors{{Name: "a", Value: "2"}, {Name: "b", Value: "3"}}, updated)
	// base is untouched
	assert.Equal(t, Colors{{Name: "a", Value: "1"}}, base)
}

func TestTheme_Clone(t *testing.T) {
	orig := testTheme()
	clone := orig.Clone()

	clone.Colors[0].Value = "changed"
	clone.Name = "Other"

	assert.Equal(t, "#111827", orig.Colors[0].Value)
	assert.Equal(t, "Test", orig.Name)
	assert.Nil(t, (*Theme)(nil).Clone())
}

func TestTheme_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Theme)
		wantErr   error
		wantField string
	}{
		{
			name:   "valid theme",
			modify: func(th *Theme) {},
		},
		{
			name:      "missing name",
			modify:    func(th *Theme) { th.Name = "" },
			wantErr:   ErrMissingName,
			wantField: "name",
		},
		{
			name:      "missing color scheme",
			modify:    func(th *Theme) { th.ColorScheme = "" },
			wantErr:   ErrMissingColorScheme,
			wantField: "colorScheme",
		},
		{
			name:      "unknown color scheme",
			modify:    func(th *Theme) { th.ColorScheme = "sepia" },
			wantErr:   ErrInvalidColorScheme,
			wantField: "colorScheme",
		},
		{
			name:      "missing colors",
			modify:    func(th *Theme) { th.Colors = nil },
			wantErr:   ErrMissingColors,
			wantField: "colors",
		},
		{
			name:      "empty colors",
			modify:    func(th *Theme) { th.Colors = Colors{} },
			wantErr:   ErrMissingColors,
			wantField: "colors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme := testTheme()
			tt.modify(theme)

			err := theme.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidTheme)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestSettingsPatch_Apply(t *testing.T) {
	base := Settings{Theme: "nord", CustomThemeURL: "https://example.com/t.json"}

	assert.Equal(t, base, SettingsPatch{}.Apply(base))
	assert.True(t, SettingsPatch{}.IsEmpty())

	got := SelectBuiltin("ocean").Apply(base)
	assert.Equal(t, Settings{Theme: "ocean"}, got)

	got = SelectCustom("https://x.test/theme.json").Apply(DefaultSettings())
	assert.Equal(t, Settings{Theme: CustomThemeID, CustomThemeURL: "https://x.test/theme.json"}, got)
}

func TestCloakPatch_Apply(t *testing.T) {
	title := "Classes"
	got := CloakPatch{PageTitle: &title}.Apply(Cloak{IconURL: "example.com"})

	assert.Equal(t, Cloak{IconURL: "example.com", PageTitle: "Classes"}, got)
	assert.False(t, got.IsZero())
	assert.True(t, Cloak{}.IsZero())
}
