package theme

import "github.com/jmylchreest/kittengames/internal/model"

// Source says where a resolved theme came from.
type Source string

const (
	SourceBuiltin  Source = "builtin"
	SourceCustom   Source = "custom"
	SourceFallback Source = "fallback"
)

// CustomLookup finds a cached custom theme by its source URL.
type CustomLookup interface {
	Get(url string) (*model.Theme, bool)
}

// Resolution is the outcome of choosing a theme for a set of settings.
type Resolution struct {
	Theme  *model.Theme
	Source Source
	// ID is the built-in id used, or the requested id for a fallback.
	ID string
	// URL is set when Source is SourceCustom.
	URL string
}

// Resolve picks the theme to render. Resolution order:
//  1. the custom theme at settings.CustomThemeURL, if cached
//  2. the built-in theme named by settings.Theme
//  3. the default built-in theme
//
// Resolve never fails. customs may be nil.
func Resolve(settings model.Settings, customs CustomLookup) Resolution {
	if settings.CustomThemeURL != "" && customs != nil {
		if t, ok := customs.Get(settings.CustomThemeURL); ok {
			return Resolution{
				Theme:  t,
				Source: SourceCustom,
				ID:     model.CustomThemeID,
				URL:    settings.CustomThemeURL,
			}
		}
	}

	if t, ok := GetBuiltin(settings.Theme); ok {
		return Resolution{Theme: t, Source: SourceBuiltin, ID: settings.Theme}
	}

	return Resolution{Theme: Default(), Source: SourceFallback, ID: settings.Theme}
}
