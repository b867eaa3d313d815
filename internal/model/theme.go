// Package model defines the core data structures for kittengames.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ColorScheme is the light/dark hint used by native UI elements.
type ColorScheme string

const (
	ColorSchemeDark  ColorScheme = "dark"
	ColorSchemeLight ColorScheme = "light"
)

// IsValid reports whether the scheme is one of the known values.
func (s ColorScheme) IsValid() bool {
	return s == ColorSchemeDark || s == ColorSchemeLight
}

// ColorSlot is a single named colour value, e.g. "card-hover" = "#374151".
type ColorSlot struct {
	Name  string
	Value string
}

// Colors is an ordered mapping of colour slot names to colour values.
// It marshals to a JSON object (and YAML mapping) in slot order.
type Colors []ColorSlot

// Get returns the value for a slot.
func (c Colors) Get(name string) (string, bool) {
	for _, slot := range c {
		if slot.Name == name {
			return slot.Value, true
		}
	}
	return "", false
}

// With returns a copy with the slot set. An existing slot keeps its position.
func (c Colors) With(name, value string) Colors {
	out := c.Clone()
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, ColorSlot{Name: name, Value: value})
}

// Names returns the slot names in order.
func (c Colors) Names() []string {
	names := make([]string, len(c))
	for i, slot := range c {
		names[i] = slot.Name
	}
	return names
}

// Clone returns a copy that shares no backing array with c.
func (c Colors) Clone() Colors {
	if c == nil {
		return nil
	}
	out := make(Colors, len(c))
	copy(out, c)
	return out
}

// MarshalJSON writes the slots as a JSON object, preserving order.
func (c Colors) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, slot := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(slot.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(slot.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of string values, preserving key order.
// Shape problems are reported as a *ValidationError on the "colors" field.
func (c *Colors) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		// null leaves the value untouched
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return &ValidationError{Field: "colors", Err: ErrColorsNotObject}
	}

	out := Colors{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				return &ValidationError{Field: "colors." + key, Err: ErrColorNotString}
			}
			return err
		}
		out = out.With(key, value)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out
	return nil
}

// MarshalYAML writes the slots as a YAML mapping, preserving order.
func (c Colors) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, slot := range c {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: slot.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: slot.Value, Style: yaml.DoubleQuotedStyle},
		)
	}
	return node, nil
}

// Theme is a named, ordered set of colour values plus a light/dark hint.
type Theme struct {
	Name        string      `json:"name" yaml:"name"`
	ColorScheme ColorScheme `json:"colorScheme" yaml:"colorScheme"`
	Colors      Colors      `json:"colors" yaml:"colors"`
}

// Clone returns a deep copy of the theme.
func (t *Theme) Clone() *Theme {
	if t == nil {
		return nil
	}
	return &Theme{
		Name:        t.Name,
		ColorScheme: t.ColorScheme,
		Colors:      t.Colors.Clone(),
	}
}

// ErrInvalidTheme matches every theme validation error.
var ErrInvalidTheme = errors.New("invalid theme")

// Theme validation errors.
var (
	ErrMissingName        = errors.New("name is required")
	ErrMissingColorScheme = errors.New("colorScheme is required")
	ErrInvalidColorScheme = errors.New("colorScheme must be \"dark\" or \"light\"")
	ErrMissingColors      = errors.New("colors is required")
	ErrColorsNotObject    = errors.New("colors must be an object")
	ErrColorNotString     = errors.New("colour values must be strings")
)

// ValidationError describes the first problem found in a theme document.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid theme: %s: %v", e.Field, e.Err)
}

// Unwrap allows errors.Is against both ErrInvalidTheme and the field error.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidTheme, e.Err}
}

// Validate checks that the theme has all required fields.
func (t *Theme) Validate() error {
	if t.Name == "" {
		return &ValidationError{Field: "name", Err: ErrMissingName}
	}
	if t.ColorScheme == "" {
		return &ValidationError{Field: "colorScheme", Err: ErrMissingColorScheme}
	}
	if !t.ColorScheme.IsValid() {
		return &ValidationError{Field: "colorScheme", Err: ErrInvalidColorScheme}
	}
	if len(t.Colors) == 0 {
		return &ValidationError{Field: "colors", Err: ErrMissingColors}
	}
	return nil
}
