package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/drawpoker/internal/display"
)

// Pane styles; card colours come from the display renderer
var (
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(display.ColorMuted).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(display.ColorHeader).
			Bold(true).
			Padding(0, 1)

	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(display.ColorMint).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(display.ColorMint)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(display.ColorRed).
			Bold(true)
)
