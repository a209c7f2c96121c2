package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderStatusBar() string {
	if m.err != nil {
		errStyle := lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorRed).
			Bold(true)
		return errStyle.Width(m.width).Render(" " + m.err.Error())
	}

	hints := m.keyHints()
	return statusBarStyle.Width(m.width).Render(" " + hints)
}

func (m Model) keyHints() string {
	var hints []string
	switch m.view {
	case viewLogin:
		hints = []string{"Enter sign in", "Tab next field", "Ctrl+q quit"}
	case viewProjects:
		hints = []string{"j/k navigate", "Enter open", "r refresh", "Ctrl+o log out", "Ctrl+q quit"}
	case viewServices:
		hints = []string{"j/k navigate", "Enter open", "Esc back", "r refresh"}
	case viewService:
		if m.panel != nil && m.panel.Editing() {
			hints = []string{"Enter apply", "Tab next field", "Esc cancel"}
		} else if m.panel != nil && m.panel.Tab() == tabLogs {
			hints = []string{"e filters", "r reconnect", "d disconnect", "c clear", "j/k scroll", "Tab overview", "Esc back"}
		} else {
			hints = []string{"Tab logs", "Esc back"}
		}
	default:
		hints = []string{"Ctrl+q quit"}
	}
	return strings.Join(hints, "  |  ")
}
