package tui

import "github.com/charmbracelet/lipgloss"

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Layout styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	headerDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim)
)

// Tab styles.
var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(colorWhite)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// List styles.
var (
	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite)

	selectedItemStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	dimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Service status styles.
var (
	statusRunningStyle = lipgloss.NewStyle().Foreground(colorGreen)
	statusErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	statusIdleStyle    = lipgloss.NewStyle().Foreground(colorDim)
	statusBusyStyle    = lipgloss.NewStyle().Foreground(colorYellow)
)

// Stream state styles.
var (
	streamConnectedStyle  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	streamConnectingStyle = lipgloss.NewStyle().Foreground(colorYellow)
	streamErrorStyle      = lipgloss.NewStyle().Foreground(colorRed)
	streamIdleStyle       = lipgloss.NewStyle().Foreground(colorDim)
)

// Form styles.
var (
	formTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginBottom(1)

	formLabelStyle = lipgloss.NewStyle().Foreground(colorDim)

	formErrorStyle = lipgloss.NewStyle().Foreground(colorRed)

	brandStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "running", "done":
		return statusRunningStyle
	case "error", "failed":
		return statusErrorStyle
	case "deploying", "building", "restarting":
		return statusBusyStyle
	default:
		return statusIdleStyle
	}
}
