package tui

import (
	"github.com/charmbracelet/lipgloss"

	"aqimap/internal/aqi"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	errorFg   = lipgloss.Color("#F87171")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	errStyle   = lipgloss.NewStyle().Foreground(errorFg)
)

var categoryStyles = func() [aqi.NumCategories]lipgloss.Style {
	var out [aqi.NumCategories]lipgloss.Style
	for _, c := range aqi.All() {
		out[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(aqi.Hex(c)))
	}
	return out
}()

// badgeStyle renders a category label on its own color.
func badgeStyle(c aqi.Category) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(aqi.Hex(c))).
		Foreground(lipgloss.Color(aqi.TextHex(c))).
		Padding(0, 1)
}

// rgbStyle builds a foreground style from a normalized color triple.
func rgbStyle(r, g, b float32) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(aqi.RGB{R: r, G: g, B: b}.Hex()))
}
