package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var canvasStyle = lipgloss.NewStyle().Padding(1, 2)

// canvas origin inside canvasStyle, in cells
const (
	canvasOffsetX = 2
	canvasOffsetY = 1
)

// GradientText colors each rune of text along a Lab blend from start to
// end.
func GradientText(text string, start, end colorful.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := start.BlendLab(end, t).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

// ProgressBar renders a gauge of width cells filled to fraction.
func ProgressBar(fraction float64, width int, s Styles) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case fraction > 0.8:
		return s.Paused.Render(bar)
	case fraction > 0.4:
		return s.Running.Render(bar)
	}
	return s.Value.Render(bar)
}

// Separator draws a decorated horizontal rule.
func Separator(width int, s Styles) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Hint.UnsetMarginTop().Render(left + " ◆ " + right)
}

// Row renders one label/value line.
func Row(s Styles, label, value string) string {
	return s.Label.Render(label) + s.Value.Render(value) + "\n"
}
