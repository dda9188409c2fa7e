package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("12")
	colorSecondary = lipgloss.Color("10")
	colorDim       = lipgloss.Color("240")
	colorHighlight = lipgloss.Color("11")
	colorDanger    = lipgloss.Color("9")
	colorBorder    = lipgloss.Color("238")

	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleListSelected = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	styleListNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleSourceClaude = lipgloss.NewStyle().
				Foreground(colorPrimary)

	styleSourceCodex = lipgloss.NewStyle().
				Foreground(colorSecondary)

	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	// delete prompt
	styleConfirm = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true).
			Padding(0, 1)
)
