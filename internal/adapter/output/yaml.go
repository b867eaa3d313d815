package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/kittengames/internal/model"
)

// YAMLFormatter formats launcher data as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

func (f *YAMLFormatter) encode(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// Themes writes themes as a YAML sequence.
func (f *YAMLFormatter) Themes(w io.Writer, themes []ThemeEntry) error {
	if themes == nil {
		themes = []ThemeEntry{}
	}
	return f.encode(w, themes)
}

// Theme writes a single theme as YAML.
func (f *YAMLFormatter) Theme(w io.Writer, theme ThemeEntry) error {
	return f.encode(w, theme)
}

// Games writes games as a YAML sequence.
func (f *YAMLFormatter) Games(w io.Writer, games []model.Game) error {
	if games == nil {
		games = []model.Game{}
	}
	return f.encode(w, games)
}

// Cloak writes the cloak as YAML.
func (f *YAMLFormatter) Cloak(w io.Writer, cloak CloakView) error {
	return f.encode(w, cloak)
}

// Status writes the status as YAML.
func (f *YAMLFormatter) Status(w io.Writer, status Status) error {
	return f.encode(w, status)
}
