package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	accentColor = lipgloss.Color("14") // Cyan
	dimColor    = lipgloss.Color("8")  // Gray
	warnColor   = lipgloss.Color("9")  // Red
	matchColor  = lipgloss.Color("11") // Yellow
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(matchColor)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			MarginTop(1)

	prefixStyle = lipgloss.NewStyle().
			Foreground(accentColor)
)
