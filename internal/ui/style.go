// Package ui renders the live session dashboard and startup errors.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color scheme used throughout the application
type Colors struct {
	Subtle    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Special   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"},
	Special:   lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"},
	Warning:   lipgloss.AdaptiveColor{Light: "#C48A00", Dark: "#F5C542"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
}

// Gradient endpoints of the countdown bar, purple to green.
const (
	gradientStart = "#7D56F4"
	gradientEnd   = "#43BF6D"
)

// Style represents a collection of styles used in the application
type Style struct {
	Title          lipgloss.Style
	Label          lipgloss.Style
	Value          lipgloss.Style
	ActiveStatus   lipgloss.Style
	InactiveStatus lipgloss.Style
	WarningStatus  lipgloss.Style
	Countdown      lipgloss.Style
	Help           lipgloss.Style
	Error          lipgloss.Style
	ErrorBox       lipgloss.Style
	ErrorHeader    lipgloss.Style
	ErrorDetails   lipgloss.Style
}

// DefaultStyle returns the default style configuration
func DefaultStyle() Style {
	base := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	return Style{
		Title: base.
			Bold(true).
			Foreground(defaultColors.Highlight),

		Label: base.
			Width(14).
			Foreground(defaultColors.Subtle),

		Value: lipgloss.NewStyle(),

		ActiveStatus: lipgloss.NewStyle().
			Foreground(defaultColors.Special),

		InactiveStatus: lipgloss.NewStyle().
			Foreground(defaultColors.Subtle),

		WarningStatus: lipgloss.NewStyle().
			Foreground(defaultColors.Warning),

		Countdown: base.
			Foreground(defaultColors.Highlight).
			Bold(true),

		Help: base.
			Foreground(defaultColors.Subtle),

		Error: base.
			Foreground(defaultColors.Error),

		ErrorBox: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultColors.Error).
			Padding(0, 1),

		ErrorHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(defaultColors.Error),

		ErrorDetails: lipgloss.NewStyle().
			Foreground(defaultColors.Subtle),
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()
