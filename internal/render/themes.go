package render

import "github.com/charmbracelet/glamour/styles"

// Markdown style names accepted in configuration
const (
	ThemeDark       = "dark"
	ThemeLight      = "light"
	ThemeTokyoNight = "tokyonight"
	ThemeDracula    = "dracula"
	ThemeNoTTY      = "notty"
	ThemeASCII      = "ascii"
)

// standardStyle maps a configured style name to a glamour standard style.
// The second return value is false for anything else, which is then treated
// as a path to a JSON style file.
func standardStyle(name string) (string, bool) {
	switch name {
	case ThemeDark:
		return styles.DarkStyle, true
	case ThemeLight:
		return styles.LightStyle, true
	case ThemeTokyoNight, styles.TokyoNightStyle:
		return styles.TokyoNightStyle, true
	case ThemeDracula:
		return styles.DraculaStyle, true
	case ThemeNoTTY:
		return styles.NoTTYStyle, true
	case ThemeASCII:
		return styles.AsciiStyle, true
	default:
		return "", false
	}
}

// IsBuiltinStyle returns true if the style does not refer to a file
func IsBuiltinStyle(style string) bool {
	_, ok := standardStyle(style)
	return ok
}

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns the markdown styles that can be configured by name.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemeDark, Description: "Dark theme (default)"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: ThemeTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: ThemeDracula, Description: "Dracula color scheme"},
		{Name: ThemeNoTTY, Description: "Plain text (no styling)"},
		{Name: ThemeASCII, Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
