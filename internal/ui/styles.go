package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Base styles
	BaseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	// Header styles
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Underline(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	ScrollHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	ScrollInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			PaddingLeft(1)

	// Tab styles
	TabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Margin(0, 1)

	ActiveTabStyle = TabStyle.
			Foreground(lipgloss.Color("36")).
			Bold(true).
			Underline(true)

	InactiveTabStyle = TabStyle.
				Foreground(lipgloss.Color("241"))

	// Progress bar styles
	ProgressCompleteStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("36"))

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	// Data styles
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// Table styles
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true).
				PaddingLeft(1).
				PaddingRight(1)

	TableCellStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1)

	EvenRowStyle = TableCellStyle.
			Foreground(lipgloss.Color("252"))

	OddRowStyle = TableCellStyle.
			Foreground(lipgloss.Color("245"))

	SelectedRowStyle = TableCellStyle.
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true)
)

// UsageStyle colours a utilization fraction by how close it is to saturation.
func UsageStyle(fraction float64) lipgloss.Style {
	switch {
	case fraction >= 0.9:
		return ErrorStyle
	case fraction >= 0.7:
		return WarningStyle
	default:
		return SuccessStyle
	}
}

// RenderProgressBar draws a fraction in [0,1] as a fixed-width bar.
func RenderProgressBar(fraction float64, width int) string {
	if width <= 0 {
		width = 20
	}

	filled := int(fraction * float64(width))
	filled = max(0, min(filled, width))

	return ProgressCompleteStyle.Render(strings.Repeat("█", filled)) +
		ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}
