// Package theme provides the color palettes for the TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines all colors used in the application UI.
type Theme struct {
	Background lipgloss.Color
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // Foreground color for text on Accent background
	AccentDim  lipgloss.Color
	Border     lipgloss.Color
	MutedFg    lipgloss.Color
	TextFg     lipgloss.Color
	SuccessFg  lipgloss.Color
	WarnFg     lipgloss.Color
	ErrorFg    lipgloss.Color
	Cyan       lipgloss.Color
}

// Theme names.
const (
	DraculaName    = "dracula"
	NarnaName      = "narna"
	CleanLightName = "clean-light"
)

// Dracula returns the Dracula theme (dark background, vibrant colors).
func Dracula() *Theme {
	return &Theme{
		Background: lipgloss.Color("#282A36"),
		Accent:     lipgloss.Color("#BD93F9"),
		AccentFg:   lipgloss.Color("#282A36"),
		AccentDim:  lipgloss.Color("#44475A"),
		Border:     lipgloss.Color("#6272A4"),
		MutedFg:    lipgloss.Color("#6272A4"),
		TextFg:     lipgloss.Color("#F8F8F2"),
		SuccessFg:  lipgloss.Color("#50FA7B"),
		WarnFg:     lipgloss.Color("#FFB86C"),
		ErrorFg:    lipgloss.Color("#FF5555"),
		Cyan:       lipgloss.Color("#8BE9FD"),
	}
}

// Narna returns a balanced dark theme with blue accents.
func Narna() *Theme {
	return &Theme{
		Background: lipgloss.Color("#0D1117"),
		Accent:     lipgloss.Color("#41ADFF"),
		AccentFg:   lipgloss.Color("#0D1117"),
		AccentDim:  lipgloss.Color("#1A2230"),
		Border:     lipgloss.Color("#30363D"),
		MutedFg:    lipgloss.Color("#8B949E"),
		TextFg:     lipgloss.Color("#E6EDF3"),
		SuccessFg:  lipgloss.Color("#3FB950"),
		WarnFg:     lipgloss.Color("#E3B341"),
		ErrorFg:    lipgloss.Color("#F47067"),
		Cyan:       lipgloss.Color("#7CE0F3"),
	}
}

// CleanLight returns a theme optimized for light terminal backgrounds.
func CleanLight() *Theme {
	return &Theme{
		Background: lipgloss.Color("#FFFFFF"),
		Accent:     lipgloss.Color("#c6dbe5"),
		AccentFg:   lipgloss.Color("#24292F"),
		AccentDim:  lipgloss.Color("#DDF4FF"),
		Border:     lipgloss.Color("#D0D7DE"),
		MutedFg:    lipgloss.Color("#6E7781"),
		TextFg:     lipgloss.Color("#24292F"),
		SuccessFg:  lipgloss.Color("#1A7F37"),
		WarnFg:     lipgloss.Color("#9A6700"),
		ErrorFg:    lipgloss.Color("#CF222E"),
		Cyan:       lipgloss.Color("#0598BC"),
	}
}

// ByName resolves a theme by name; unknown names fall back to Narna.
func ByName(name string) *Theme {
	switch name {
	case DraculaName:
		return Dracula()
	case CleanLightName:
		return CleanLight()
	default:
		return Narna()
	}
}

// AvailableThemes lists the known theme names.
func AvailableThemes() []string {
	return []string{DraculaName, NarnaName, CleanLightName}
}
