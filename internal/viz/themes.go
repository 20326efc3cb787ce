package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the scrubber.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeWorkshop = Theme{
		Name:    "workshop",
		Primary: lipgloss.Color("#ffaa33"),
		Accent:  lipgloss.Color("#00ccff"),
		Text:    lipgloss.Color("#f0e6d2"),
		Muted:   lipgloss.Color("#7a6a55"),
		Success: lipgloss.Color("#88dd66"),
		Warning: lipgloss.Color("#ff6644"),
	}

	ThemeBlueprint = Theme{
		Name:    "blueprint",
		Primary: lipgloss.Color("#e0f0ff"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{
		ThemeWorkshop,
		ThemeBlueprint,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, or the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
