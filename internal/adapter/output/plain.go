package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/kittengames/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// PlainFormatter formats launcher data as human-readable text.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// Themes writes one line per theme, marking the active one.
func (f *PlainFormatter) Themes(w io.Writer, themes []ThemeEntry) error {
	var sb strings.Builder

	for _, t := range themes {
		marker := "  "
		if t.Active {
			marker = activeStyle.Render("* ")
		}
		sb.WriteString(marker)
		sb.WriteString(fmt.Sprintf("%-14s %-16s %-5s", t.ID, t.Name, t.ColorScheme))
		if sw := f.swatches(t.Colors); sw != "" {
			sb.WriteString(" " + sw)
		}
		if t.URL != "" {
			sb.WriteString(" " + labelStyle.Render(t.URL))
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Theme writes a theme header followed by its colour slots.
func (f *PlainFormatter) Theme(w io.Writer, theme ThemeEntry) error {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(theme.Name))
	sb.WriteString(fmt.Sprintf(" (%s, %s)\n", theme.ColorScheme, theme.Source))
	if theme.URL != "" {
		sb.WriteString(labelStyle.Render("url: ") + theme.URL + "\n")
	}

	width := 0
	for _, name := range theme.Colors.Names() {
		width = max(width, len(name))
	}
	for _, slot := range theme.Colors {
		sb.WriteString(fmt.Sprintf("  %-*s %s", width, slot.Name, slot.Value))
		if sw := f.swatch(slot.Value); sw != "" {
			sb.WriteString(" " + sw)
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Games writes one line per game.
func (f *PlainFormatter) Games(w io.Writer, games []model.Game) error {
	for i, g := range games {
		if _, err := fmt.Fprintf(w, "[%d] %s\n    %s\n", i+1, g.Name, g.URL); err != nil {
			return err
		}
	}
	return nil
}

// Cloak writes the title and icon overrides.
func (f *PlainFormatter) Cloak(w io.Writer, cloak CloakView) error {
	if cloak.IsZero() {
		_, err := fmt.Fprintln(w, "no cloak set")
		return err
	}

	var sb strings.Builder
	writeField(&sb, "title", valueOrNone(cloak.PageTitle))
	writeField(&sb, "icon", valueOrNone(cloak.IconURL))
	if cloak.IconHref != "" {
		writeField(&sb, "href", cloak.IconHref)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Status writes the launcher status.
func (f *PlainFormatter) Status(w io.Writer, status Status) error {
	var sb strings.Builder

	writeField(&sb, "storage", status.StorageDir)
	theme := fmt.Sprintf("%s (%s)", status.ActiveTheme.Name, status.ActiveTheme.Source)
	if status.ActiveTheme.URL != "" {
		theme += " " + status.ActiveTheme.URL
	}
	writeField(&sb, "theme", theme)
	writeField(&sb, "custom", humanize.Comma(int64(status.CustomThemes))+" cached")

	cloak := "none"
	if !status.Cloak.IsZero() {
		cloak = fmt.Sprintf("%q %s", status.Cloak.PageTitle, status.Cloak.IconURL)
	}
	writeField(&sb, "cloak", cloak)

	for _, k := range status.Keys {
		saved := "not saved"
		if k.Present {
			saved = "saved " + humanize.Time(k.Saved)
		}
		writeField(&sb, k.Key, saved)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// swatches renders a short colour strip for a theme.
func (f *PlainFormatter) swatches(colors model.Colors) string {
	var sb strings.Builder
	for _, slot := range colors {
		sb.WriteString(f.swatch(slot.Value))
	}
	return sb.String()
}

func (f *PlainFormatter) swatch(value string) string {
	if f.opts.NoColor || !strings.HasPrefix(value, "#") {
		return ""
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(value)).Render("  ")
}

func writeField(sb *strings.Builder, label, value string) {
	sb.WriteString(labelStyle.Render(fmt.Sprintf("%-28s", label+":")))
	sb.WriteString(" " + value + "\n")
}

func valueOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
