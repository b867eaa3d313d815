// Package output provides output formatters for themes, games, the cloak
// and launcher status.
package output

import (
	"io"
	"time"

	"github.com/jmylchreest/kittengames/internal/model"
)

// Formatter formats launcher data for output.
type Formatter interface {
	// Themes writes a list of themes.
	Themes(w io.Writer, themes []ThemeEntry) error
	// Theme writes a single theme including its colours.
	Theme(w io.Writer, theme ThemeEntry) error
	// Games writes catalog entries.
	Games(w io.Writer, games []model.Game) error
	// Cloak writes the current cloak.
	Cloak(w io.Writer, cloak CloakView) error
	// Status writes the launcher status.
	Status(w io.Writer, status Status) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatDmenu FormatType = "dmenu"
)

// ThemeEntry describes a theme as listed by the launcher.
type ThemeEntry struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	ColorScheme model.ColorScheme `json:"colorScheme" yaml:"colorScheme"`
	Source      string            `json:"source" yaml:"source"`
	URL         string            `json:"url,omitempty" yaml:"url,omitempty"`
	Active      bool              `json:"active" yaml:"active"`
	Colors      model.Colors      `json:"colors,omitempty" yaml:"colors,omitempty"`
}

// CloakView is the cloak plus the icon href it resolves to.
type CloakView struct {
	model.Cloak `yaml:",inline"`
	IconHref    string `json:"iconHref,omitempty" yaml:"iconHref,omitempty"`
}

// KeyStatus describes one persisted key.
type KeyStatus struct {
	Key     string    `json:"key" yaml:"key"`
	Present bool      `json:"present" yaml:"present"`
	Saved   time.Time `json:"saved,omitzero" yaml:"saved,omitempty"`
}

// Status summarises the launcher state.
type Status struct {
	StorageDir   string         `json:"storageDir" yaml:"storageDir"`
	Settings     model.Settings `json:"settings" yaml:"settings"`
	ActiveTheme  ThemeEntry     `json:"activeTheme" yaml:"activeTheme"`
	CustomThemes int            `json:"customThemes" yaml:"customThemes"`
	Cloak        CloakView      `json:"cloak" yaml:"cloak"`
	Keys         []KeyStatus    `json:"keys" yaml:"keys"`
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template   string // Custom line template for dmenu format
	Separator  string // Field separator for dmenu format
	NameMaxLen int    // Maximum name length in dmenu lines (0 = unlimited)
	NoColor    bool   // Disable colour swatches in plain output
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		Separator:  " | ",
		NameMaxLen: 60,
	}
}
