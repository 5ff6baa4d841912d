package viz

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the color scheme for panels and status lines. Scene colors come
// from configuration, not the theme.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
	Stopped lipgloss.Color
}

var themes = map[string]Theme{
	"cyberpunk": {
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#00ffff"),
		Accent:  lipgloss.Color("#ff00ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Border:  lipgloss.Color("#444466"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffaa00"),
		Stopped: lipgloss.Color("#ff4444"),
	},
	"retro": {
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Border:  lipgloss.Color("#003300"),
		Running: lipgloss.Color("#88ff88"),
		Paused:  lipgloss.Color("#ffff00"),
		Stopped: lipgloss.Color("#ff0000"),
	},
	"ocean": {
		Name:    "ocean",
		Primary: lipgloss.Color("#00a8cc"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Border:  lipgloss.Color("#0077be"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffcc00"),
		Stopped: lipgloss.Color("#ff4444"),
	},
	"sunset": {
		Name:    "sunset",
		Primary: lipgloss.Color("#feca57"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Border:  lipgloss.Color("#ff6b6b"),
		Running: lipgloss.Color("#5fd068"),
		Paused:  lipgloss.Color("#ffc048"),
		Stopped: lipgloss.Color("#ff4757"),
	},
}

// DefaultTheme is used for unknown names.
const DefaultTheme = "cyberpunk"

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultTheme]
}

// ThemeNames returns the available theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NextTheme cycles to the theme after t.
func NextTheme(t Theme) Theme {
	names := ThemeNames()
	for i, n := range names {
		if n == t.Name {
			return themes[names[(i+1)%len(names)]]
		}
	}
	return themes[DefaultTheme]
}

// Styles are the lipgloss styles a Theme renders with.
type Styles struct {
	Title, Label, Value, Hint, Panel, Graph lipgloss.Style
	Running, Paused, Stopped                lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1),
		Label: lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value: lipgloss.NewStyle().Foreground(t.Text),
		Hint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(46),
		Graph:   lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		Running: lipgloss.NewStyle().Bold(true).Foreground(t.Running),
		Paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Paused),
		Stopped: lipgloss.NewStyle().Bold(true).Foreground(t.Stopped),
	}
}
