// Package styles holds the widget's lipgloss styles, built from a theme
// palette and optionally overridden per visual role.
package styles

import (
	"github.com/Iron-Ham/clap/internal/config"
	"github.com/Iron-Ham/clap/internal/target"
	"github.com/charmbracelet/lipgloss"
)

// Set is every style the widget and its usage surface render with.
type Set struct {
	Palette *ColorPalette

	Button        lipgloss.Style
	ButtonClicked lipgloss.Style
	Counter       lipgloss.Style
	Total         lipgloss.Style

	Title    lipgloss.Style
	Status   lipgloss.Style
	Notice   lipgloss.Style
	Warning  lipgloss.Style
	Spinner  lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// New builds a Set from palette. A nil palette uses DefaultPalette.
func New(p *ColorPalette) *Set {
	if p == nil {
		p = DefaultPalette()
	}
	return &Set{
		Palette: p,

		Button: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Foreground(p.Text).
			Padding(0, 1),

		ButtonClicked: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Foreground(p.Accent).
			Bold(true).
			Padding(0, 1),

		Counter: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent),

		Total: lipgloss.NewStyle().
			Foreground(p.Muted),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),

		Status:   lipgloss.NewStyle().Foreground(p.Muted),
		Notice:   lipgloss.NewStyle().Foreground(p.Primary).Italic(true),
		Warning:  lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		Spinner:  lipgloss.NewStyle().Foreground(p.Accent),
		HelpKey:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		HelpDesc: lipgloss.NewStyle().Foreground(p.Muted),
	}
}

// ForTheme builds a Set for a named theme.
func ForTheme(name string) *Set {
	return New(GetPalette(ThemeName(name)))
}

// Override replaces parts of a role's default style.
type Override struct {
	Foreground       string
	BorderForeground string
	Bold             bool
}

// Overrides maps roles to their overrides. They are passed through to
// rendering untouched.
type Overrides map[target.Role]Override

// FromConfig converts configured role styles, skipping empty ones.
func FromConfig(cfg config.StylesConfig) Overrides {
	o := Overrides{}
	add := func(role target.Role, rs config.RoleStyle) {
		if !rs.IsZero() {
			o[role] = Override{
				Foreground:       rs.Foreground,
				BorderForeground: rs.BorderForeground,
				Bold:             rs.Bold,
			}
		}
	}
	add(target.RoleButton, cfg.Button)
	add(target.RoleCounter, cfg.Counter)
	add(target.RoleTotal, cfg.Total)
	return o
}

// Apply returns base with role's override laid over it.
func (o Overrides) Apply(role target.Role, base lipgloss.Style) lipgloss.Style {
	ov, ok := o[role]
	if !ok {
		return base
	}
	if ov.Foreground != "" {
		base = base.Foreground(lipgloss.Color(ov.Foreground))
	}
	if ov.BorderForeground != "" {
		base = base.BorderForeground(lipgloss.Color(ov.BorderForeground))
	}
	if ov.Bold {
		base = base.Bold(true)
	}
	return base
}

// Hex returns the style's foreground as a hex string when it is a plain
// lipgloss.Color, or fallback otherwise.
func Hex(s lipgloss.Style, fallback lipgloss.Color) string {
	if c, ok := s.GetForeground().(lipgloss.Color); ok && c != "" {
		return string(c)
	}
	return string(fallback)
}
