package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the preview and the menus.
type Theme struct {
	// Status bar
	StatusTitle  lipgloss.Style
	StatusValue  lipgloss.Style
	StatusPaused lipgloss.Style
	StatusError  lipgloss.Style
	StatusInfo   lipgloss.Style

	// Menus and tables
	MenuTitle       lipgloss.Style
	MenuDescription lipgloss.Style
	Border          lipgloss.Style
	Empty           lipgloss.Style
	Help            lipgloss.Style

	// Table colors
	TableHeaderBorder lipgloss.Color
	TableSelectedFg   lipgloss.Color
	TableSelectedBg   lipgloss.Color
}

// DefaultTheme returns the theme for the local terminal.
func DefaultTheme() Theme {
	return NewTheme(lipgloss.DefaultRenderer())
}

// NewTheme builds the theme on a specific renderer, so that SSH sessions
// get styles matching the client's terminal.
func NewTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		StatusTitle:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		StatusValue:  r.NewStyle().Foreground(lipgloss.Color("245")),
		StatusPaused: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		StatusError:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		StatusInfo:   r.NewStyle().Foreground(lipgloss.Color("42")),

		MenuTitle:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		MenuDescription: r.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Border: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Empty: r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
		Help:  r.NewStyle().Foreground(lipgloss.Color("241")),

		TableHeaderBorder: lipgloss.Color("240"),
		TableSelectedFg:   lipgloss.Color("229"),
		TableSelectedBg:   lipgloss.Color("57"),
	}
}
