// Package tui provides the terminal settings panel.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	normalColor  = lipgloss.AdaptiveColor{Light: "236", Dark: "252"}
	dimColor     = lipgloss.AdaptiveColor{Light: "250", Dark: "238"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "244", Dark: "244"}
	accentColor  = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	warnColor    = lipgloss.AdaptiveColor{Light: "160", Dark: "203"}
	successColor = lipgloss.AdaptiveColor{Light: "28", Dark: "78"}
	surfaceColor = lipgloss.AdaptiveColor{Light: "254", Dark: "235"}
)

// styles holds every style the panel renders with.
type styles struct {
	title          lipgloss.Style
	section        lipgloss.Style
	text           lipgloss.Style
	note           lipgloss.Style
	dim            lipgloss.Style
	selected       lipgloss.Style
	button         lipgloss.Style
	buttonFocused  lipgloss.Style
	buttonDisabled lipgloss.Style
	card           lipgloss.Style
	errorCard      lipgloss.Style
	errorTitle     lipgloss.Style
	toast          lipgloss.Style
	status         lipgloss.Style
	statusError    lipgloss.Style
	sliderFill     lipgloss.Style
	sliderEmpty    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:          lipgloss.NewStyle().Bold(true).Foreground(accentColor),
		section:        lipgloss.NewStyle().Bold(true).Foreground(normalColor).MarginTop(1),
		text:           lipgloss.NewStyle().Foreground(normalColor),
		note:           lipgloss.NewStyle().Foreground(mutedColor),
		dim:            lipgloss.NewStyle().Foreground(dimColor),
		selected:       lipgloss.NewStyle().Foreground(accentColor).Bold(true),
		button:         lipgloss.NewStyle().Foreground(normalColor).Background(surfaceColor).Padding(0, 1),
		buttonFocused:  lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(accentColor).Bold(true).Padding(0, 1),
		buttonDisabled: lipgloss.NewStyle().Foreground(dimColor).Background(surfaceColor).Padding(0, 1),
		card:           lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 1),
		errorCard:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(warnColor).Padding(0, 1),
		errorTitle:     lipgloss.NewStyle().Bold(true).Foreground(warnColor),
		toast:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(successColor).Padding(0, 1),
		status:         lipgloss.NewStyle().Foreground(successColor),
		statusError:    lipgloss.NewStyle().Foreground(warnColor),
		sliderFill:     lipgloss.NewStyle().Foreground(accentColor),
		sliderEmpty:    lipgloss.NewStyle().Foreground(dimColor),
	}
}

// disabledIf returns the dim style when disabled, s otherwise.
func (st styles) disabledIf(disabled bool, s lipgloss.Style) lipgloss.Style {
	if disabled {
		return st.dim
	}
	return s
}
