// Package document models the launcher page's presentation layer: the CSS
// custom properties, colour-scheme hint, title and icon that the settings
// and cloak stores apply as side effects.
package document

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/jmylchreest/kittengames/internal/model"
)

// Defaults used when no original title or icon is configured.
const (
	DefaultTitle = "KittenGames"
	DefaultIcon  = "/favicon.ico"
)

// property is a single CSS custom property.
type property struct {
	name  string
	value string
}

// Snapshot is a point-in-time copy of the document state.
type Snapshot struct {
	Title       string            `json:"title" yaml:"title"`
	Icon        string            `json:"icon" yaml:"icon"`
	ColorScheme model.ColorScheme `json:"colorScheme" yaml:"colorScheme"`
	Properties  model.Colors      `json:"properties" yaml:"properties"`
	Reloads     int               `json:"reloads" yaml:"reloads"`
}

// Document holds presentation state. It is safe for concurrent use.
type Document struct {
	mu sync.RWMutex

	originalTitle string
	originalIcon  string

	title       string
	icon        string
	colorScheme model.ColorScheme
	properties  []property
	index       map[string]int // property name -> slice index
	reloads     int
}

// New creates a document with the given original title and icon.
// Empty values use DefaultTitle and DefaultIcon.
func New(title, icon string) *Document {
	if title == "" {
		title = DefaultTitle
	}
	if icon == "" {
		icon = DefaultIcon
	}
	return &Document{
		originalTitle: title,
		originalIcon:  icon,
		title:         title,
		icon:          icon,
		index:         make(map[string]int),
	}
}

func (d *Document) setPropertyLocked(name, value string) {
	if idx, ok := d.index[name]; ok {
		d.properties[idx].value = value
		return
	}
	d.index[name] = len(d.properties)
	d.properties = append(d.properties, property{name: name, value: value})
}

// Property returns the value of a CSS custom property.
func (d *Document) Property(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	idx, ok := d.index[name]
	if !ok {
		return "", false
	}
	return d.properties[idx].value, true
}

// ApplyTheme writes every colour slot as a "--<slot>" property and sets the
// colour-scheme hint. Properties from a previous theme that the new one does
// not define keep their old values, as they would on a live page.
func (d *Document) ApplyTheme(t *model.Theme) {
	if t == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, slot := range t.Colors {
		d.setPropertyLocked("--"+slot.Name, slot.Value)
	}
	d.colorScheme = t.ColorScheme
}

// ColorScheme returns the current colour-scheme hint.
func (d *Document) ColorScheme() model.ColorScheme {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.colorScheme
}

// SetTitle overrides the visible title.
func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
}

// Title returns the visible title.
func (d *Document) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title
}

// SetIcon overrides the icon link target.
func (d *Document) SetIcon(href string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.icon = href
}

// Icon returns the icon link target.
func (d *Document) Icon() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.icon
}

// Reload restores the original title and icon, like a page reload does.
// Theme properties are kept: the settings store re-applies them on start-up.
func (d *Document) Reload() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.title = d.originalTitle
	d.icon = d.originalIcon
	d.reloads++
}

// Snapshot returns a copy of the current state.
func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	props := make(model.Colors, len(d.properties))
	for i, p := range d.properties {
		props[i] = model.ColorSlot{Name: p.name, Value: p.value}
	}
	return Snapshot{
		Title:       d.title,
		Icon:        d.icon,
		ColorScheme: d.colorScheme,
		Properties:  props,
		Reloads:     d.reloads,
	}
}

// CSS renders the properties and colour scheme as a :root rule.
func (d *Document) CSS() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var b strings.Builder
	b.WriteString(":root {\n")
	if d.colorScheme != "" {
		fmt.Fprintf(&b, "  color-scheme: %s;\n", d.colorScheme)
	}
	for _, p := range d.properties {
		fmt.Fprintf(&b, "  %s: %s;\n", p.name, sanitizeCSSValue(p.value))
	}
	b.WriteString("}\n")
	return b.String()
}

// Head renders the <title>, icon <link> and <style> elements.
func (d *Document) Head() string {
	css := d.CSS()

	d.mu.RLock()
	defer d.mu.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(d.title))
	fmt.Fprintf(&b, "<link rel=\"shortcut icon\" type=\"image/x-icon\" href=\"%s\">\n", html.EscapeString(d.icon))
	b.WriteString("<style>\n")
	b.WriteString(strings.ReplaceAll(css, "</", `<\/`))
	b.WriteString("</style>\n")
	return b.String()
}

// sanitizeCSSValue strips characters that would end the declaration or rule.
func sanitizeCSSValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '\n', '\r':
			return -1
		}
		return r
	}, v)
}
