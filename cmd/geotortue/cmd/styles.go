package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/geotortue/internal/syntax"
)

// Color palette
var (
	colorPrimary = lipgloss.Color("#8B5CF6") // Violet
	colorAccent  = lipgloss.Color("#F59E0B") // Amber
	colorSuccess = lipgloss.Color("#10B981") // Emerald
	colorError   = lipgloss.Color("#EF4444") // Red
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorCyan    = lipgloss.Color("#06B6D4")
	colorText    = lipgloss.Color("#F8FAFC")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	positionStyle = lipgloss.NewStyle().Foreground(colorAccent)
)

// tokenStyles renders each highlighting class
var tokenStyles = map[syntax.Style]lipgloss.Style{
	syntax.StyleCommand:  lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
	syntax.StyleKeyword:  lipgloss.NewStyle().Bold(true).Foreground(colorCyan),
	syntax.StyleOperator: lipgloss.NewStyle().Foreground(colorMuted),
	syntax.StyleNumber:   lipgloss.NewStyle().Foreground(colorAccent),
	syntax.StyleString:   lipgloss.NewStyle().Foreground(colorSuccess),
	syntax.StyleWord:     lipgloss.NewStyle().Foreground(colorText),
	syntax.StyleVariable: lipgloss.NewStyle().Italic(true).Foreground(colorText),
	syntax.StyleComment:  lipgloss.NewStyle().Italic(true).Foreground(colorMuted),
	syntax.StyleError:    lipgloss.NewStyle().Underline(true).Foreground(colorError),
}

func styleFor(s syntax.Style) lipgloss.Style {
	if st, ok := tokenStyles[s]; ok {
		return st
	}
	return lipgloss.NewStyle()
}
