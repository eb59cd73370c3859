// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// Color tokens. Adaptive pairs pick the variant for the terminal background.
var (
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1A1A2E", Dark: "#EAEAEA"}
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#4A4A68", Dark: "#B8B8C8"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8A8AA0", Dark: "#6B6B80"}

	AccentColor  = lipgloss.AdaptiveColor{Light: "#D2691E", Dark: "#FFB86C"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#1D9E5F", Dark: "#73F59F"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#F1FA8C"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#C23B3B", Dark: "#FF8787"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#C8C8D8", Dark: "#44475A"}
	BorderFocusColor   = AccentColor
)

// Shared styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimaryColor)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextDescriptionColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderDefaultColor).
			Padding(0, 1)

	FocusedPanelStyle = PanelStyle.
				BorderForeground(BorderFocusColor)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(SuccessColor).
			Padding(0, 2)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	StepDoneStyle    = lipgloss.NewStyle().Foreground(SuccessColor)
	StepCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	StepPendingStyle = MutedStyle
)

// RatingStyle returns the style for a rating word.
func RatingStyle(rating string) lipgloss.Style {
	switch rating {
	case "outstanding", "excellent":
		return lipgloss.NewStyle().Foreground(SuccessColor)
	case "solid":
		return lipgloss.NewStyle().Foreground(AccentColor)
	case "uneven":
		return lipgloss.NewStyle().Foreground(WarningColor)
	default:
		return lipgloss.NewStyle().Foreground(ErrorColor)
	}
}
