package model

// DefaultThemeID is the built-in theme used when nothing else resolves.
const DefaultThemeID = "dark"

// CustomThemeID is the conventional theme id stored while a custom theme is active.
const CustomThemeID = "custom"

// Settings is the persisted theme selection.
// JSON names match the storage layout used by the web launcher.
type Settings struct {
	Theme          string `json:"theme" yaml:"theme"`
	CustomThemeURL string `json:"customThemeUrl,omitempty" yaml:"customThemeUrl,omitempty"`
}

// DefaultSettings returns settings selecting the default built-in theme.
func DefaultSettings() Settings {
	return Settings{Theme: DefaultThemeID}
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged;
// an empty CustomThemeURL clears the custom theme reference.
type SettingsPatch struct {
	Theme          *string
	CustomThemeURL *string
}

// Apply returns s with the patch merged in.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.CustomThemeURL != nil {
		s.CustomThemeURL = *p.CustomThemeURL
	}
	return s
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.Theme == nil && p.CustomThemeURL == nil
}

// SelectBuiltin returns a patch activating a built-in theme and clearing any custom theme.
func SelectBuiltin(id string) SettingsPatch {
	empty := ""
	return SettingsPatch{Theme: &id, CustomThemeURL: &empty}
}

// SelectCustom returns a patch activating the custom theme loaded from url.
func SelectCustom(url string) SettingsPatch {
	id := CustomThemeID
	return SettingsPatch{Theme: &id, CustomThemeURL: &url}
}
