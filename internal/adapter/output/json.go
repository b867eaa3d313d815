package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/kittengames/internal/model"
)

// JSONFormatter formats launcher data as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

// Themes writes themes as a JSON array.
func (f *JSONFormatter) Themes(w io.Writer, themes []ThemeEntry) error {
	if themes == nil {
		themes = []ThemeEntry{}
	}
	return f.encode(w, themes)
}

// Theme writes a single theme as JSON.
func (f *JSONFormatter) Theme(w io.Writer, theme ThemeEntry) error {
	return f.encode(w, theme)
}

// Games writes games as a JSON array.
func (f *JSONFormatter) Games(w io.Writer, games []model.Game) error {
	if games == nil {
		games = []model.Game{}
	}
	return f.encode(w, games)
}

// Cloak writes the cloak as JSON.
func (f *JSONFormatter) Cloak(w io.Writer, cloak CloakView) error {
	return f.encode(w, cloak)
}

// Status writes the status as JSON.
func (f *JSONFormatter) Status(w io.Writer, status Status) error {
	return f.encode(w, status)
}
