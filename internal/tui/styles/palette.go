package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault ThemeName = "default" // Pink/purple dark theme
	ThemeMonokai ThemeName = "monokai" // Classic Monokai editor colors
	ThemeDracula ThemeName = "dracula" // Dracula theme colors
	ThemeNord    ThemeName = "nord"    // Nord theme - cool blue-gray
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeMonokai),
		string(ThemeDracula),
		string(ThemeNord),
	}
}

// IsValidTheme checks if a theme name is a built-in theme.
func IsValidTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Accent is the clap color: clicked button, count bubble
	Accent lipgloss.Color
	// Primary is used for headings and help keys
	Primary lipgloss.Color
	// Warning is used for the rate limit notice
	Warning lipgloss.Color
	// Muted is used for de-emphasized text and the total
	Muted lipgloss.Color
	// Surface is the background the fades blend toward
	Surface lipgloss.Color
	// Text is the primary text color
	Text lipgloss.Color
	// Border is the resting button border
	Border lipgloss.Color
	// Burst colors for the two particle rings
	BurstTriangle lipgloss.Color
	BurstCircle   lipgloss.Color
}

// DefaultPalette returns the default dark theme palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Accent:        lipgloss.Color("#F472B6"), // Pink
		Primary:       lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Warning:       lipgloss.Color("#F59E0B"), // Amber
		Muted:         lipgloss.Color("#9CA3AF"), // Gray
		Surface:       lipgloss.Color("#1F2937"), // Dark surface
		Text:          lipgloss.Color("#F9FAFB"), // Light text
		Border:        lipgloss.Color("#6B7280"), // Gray-500
		BurstTriangle: lipgloss.Color("#D33600"),
		BurstCircle:   lipgloss.Color("#95A5A6"),
	}
}

// MonokaiPalette returns the classic Monokai editor theme palette.
func MonokaiPalette() *ColorPalette {
	return &ColorPalette{
		Accent:        lipgloss.Color("#F92672"), // Monokai pink/magenta
		Primary:       lipgloss.Color("#AE81FF"), // Purple
		Warning:       lipgloss.Color("#E6DB74"), // Monokai yellow
		Muted:         lipgloss.Color("#75715E"), // Monokai comment gray
		Surface:       lipgloss.Color("#272822"), // Monokai background
		Text:          lipgloss.Color("#F8F8F2"), // Monokai foreground
		Border:        lipgloss.Color("#49483E"), // Monokai selection
		BurstTriangle: lipgloss.Color("#FD971F"), // Orange
		BurstCircle:   lipgloss.Color("#A6E22E"), // Green
	}
}

// DraculaPalette returns the Dracula theme palette.
func DraculaPalette() *ColorPalette {
	return &ColorPalette{
		Accent:        lipgloss.Color("#FF79C6"), // Dracula pink
		Primary:       lipgloss.Color("#BD93F9"), // Dracula purple
		Warning:       lipgloss.Color("#F1FA8C"), // Dracula yellow
		Muted:         lipgloss.Color("#6272A4"), // Dracula comment
		Surface:       lipgloss.Color("#282A36"), // Dracula background
		Text:          lipgloss.Color("#F8F8F2"), // Dracula foreground
		Border:        lipgloss.Color("#44475A"), // Dracula selection
		BurstTriangle: lipgloss.Color("#FFB86C"), // Orange
		BurstCircle:   lipgloss.Color("#8BE9FD"), // Cyan
	}
}

// NordPalette returns the Nord theme palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Accent:        lipgloss.Color("#B48EAD"), // Nord aurora purple
		Primary:       lipgloss.Color("#88C0D0"), // Nord frost (cyan)
		Warning:       lipgloss.Color("#EBCB8B"), // Nord aurora yellow
		Muted:         lipgloss.Color("#4C566A"), // Nord polar night 3
		Surface:       lipgloss.Color("#2E3440"), // Nord polar night 0
		Text:          lipgloss.Color("#ECEFF4"), // Nord snow storm 2
		Border:        lipgloss.Color("#3B4252"), // Nord polar night 1
		BurstTriangle: lipgloss.Color("#D08770"), // Nord aurora orange
		BurstCircle:   lipgloss.Color("#81A1C1"), // Nord frost blue
	}
}

// GetPalette returns the color palette for the given theme name.
// Returns the default palette for unknown theme names.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeMonokai:
		return MonokaiPalette()
	case ThemeDracula:
		return DraculaPalette()
	case ThemeNord:
		return NordPalette()
	default:
		return DefaultPalette()
	}
}
