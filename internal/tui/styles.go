package tui

import "github.com/charmbracelet/lipgloss"

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 1, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(22).
			PaddingLeft(2)

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color("39")).
				Bold(true)

	selectorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			MarginLeft(2).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	focusedButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	metricsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Padding(1, 0, 0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Padding(1, 0, 0, 2)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39"))

	blockStyle = lipgloss.NewStyle().
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)
