package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	activeBg  = lipgloss.Color("#2E1065")
	borderCol = lipgloss.Color("#243141")
	focusCol  = lipgloss.Color("#7C3AED")

	appStyle      = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	focusBoxStyle = boxStyle.BorderForeground(focusCol)
	titleStyle    = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(baseDimFg)
	cursorStyle   = lipgloss.NewStyle().Foreground(baseFg).Background(activeBg)
	selectedStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)

	buttonStyle      = lipgloss.NewStyle().Foreground(baseFg)
	buttonHoverStyle = lipgloss.NewStyle().Foreground(accentFg).Underline(true)
	buttonOnStyle    = lipgloss.NewStyle().Foreground(baseFg).Background(accentFg).Bold(true)
)
