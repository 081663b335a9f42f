package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the viewer
type Theme struct {
	Name     string
	Title    lipgloss.Color
	Line     lipgloss.Color
	Positive lipgloss.Color
	Negative lipgloss.Color
	Neutral  lipgloss.Color
	Border   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Error    lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Title:    lipgloss.Color("#ff00ff"),
		Line:     lipgloss.Color("#00ffff"),
		Positive: lipgloss.Color("#ff0055"),
		Negative: lipgloss.Color("#3399ff"),
		Neutral:  lipgloss.Color("#ffff00"),
		Border:   lipgloss.Color("#ff00ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Error:    lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Title:    lipgloss.Color("#00ff00"), // Green phosphor
		Line:     lipgloss.Color("#00cc00"),
		Positive: lipgloss.Color("#88ff88"),
		Negative: lipgloss.Color("#007700"),
		Neutral:  lipgloss.Color("#ffff00"),
		Border:   lipgloss.Color("#005500"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Error:    lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Title:    lipgloss.Color("#ffffff"),
		Line:     lipgloss.Color("#cccccc"),
		Positive: lipgloss.Color("#ff0000"),
		Negative: lipgloss.Color("#0088ff"),
		Neutral:  lipgloss.Color("#888888"),
		Border:   lipgloss.Color("#888888"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Error:    lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Title:    lipgloss.Color("#0077be"),
		Line:     lipgloss.Color("#00a8cc"),
		Positive: lipgloss.Color("#ffd700"),
		Negative: lipgloss.Color("#00ff88"),
		Neutral:  lipgloss.Color("#e0f0ff"),
		Border:   lipgloss.Color("#4488aa"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Error:    lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Title:    lipgloss.Color("#ff6b6b"), // Coral
		Line:     lipgloss.Color("#feca57"),
		Positive: lipgloss.Color("#ff4757"),
		Negative: lipgloss.Color("#5fd068"),
		Neutral:  lipgloss.Color("#ff9ff3"),
		Border:   lipgloss.Color("#8b6b8c"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Error:    lipgloss.Color("#ff4757"),
	}

	// All available themes
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	return Themes[themeIndex(name)]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// ChargeColor picks the marker colour for a charge of value q.
func (t Theme) ChargeColor(q float64) lipgloss.Color {
	switch {
	case q > 0:
		return t.Positive
	case q < 0:
		return t.Negative
	}
	return t.Neutral
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}
