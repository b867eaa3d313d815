package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/kittengames/internal/model"
)

// DmenuFormatter writes one line per item for dmenu/rofi/fuzzel pickers.
// Single-value views fall back to plain text.
type DmenuFormatter struct {
	*PlainFormatter
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	plainOpts := opts
	plainOpts.NoColor = true
	f := &DmenuFormatter{PlainFormatter: NewPlainFormatter(plainOpts), opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Themes writes "index | id | name | scheme" lines.
func (f *DmenuFormatter) Themes(w io.Writer, themes []ThemeEntry) error {
	for i, t := range themes {
		line := f.formatLine(i+1, t, []string{t.ID, t.Name, string(t.ColorScheme)})
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Games writes "index | name | url" lines.
func (f *DmenuFormatter) Games(w io.Writer, games []model.Game) error {
	for i, g := range games {
		line := f.formatLine(i+1, g, []string{sanitizeField(g.Name, f.opts.NameMaxLen), g.URL})
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatLine renders a line through the custom template if set, otherwise
// joins fields with the separator.
func (f *DmenuFormatter) formatLine(index int, item any, fields []string) string {
	if f.template != nil {
		var buf strings.Builder
		if err := f.template.Execute(&buf, templateData{Index: index, Item: item}); err == nil {
			return buf.String()
		}
	}

	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}
	return strings.Join(append([]string{fmt.Sprintf("%d", index)}, fields...), sep)
}

// templateData provides data for custom templates.
type templateData struct {
	Index int
	Item  any
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": truncate,
		"lower":    strings.ToLower,
	}
}

// sanitizeField cleans up text for single-line display.
func sanitizeField(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")

	// Collapse multiple spaces
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}

	return truncate(strings.TrimSpace(s), maxLen)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
