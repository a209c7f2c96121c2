package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harborview-io/harborview/internal/session"
	"github.com/harborview-io/harborview/internal/store"
)

func (m Model) renderHeader() string {
	left := " " + brandStyle.Render("Harborview")

	if m.project != nil {
		left += headerDimStyle.Render(" / ") + headerStyle.Render(m.project.Name)
	}
	if m.panel != nil {
		left += headerDimStyle.Render(" / ") + headerStyle.Render(m.panel.serviceName)
	}

	right := ""
	if m.sessionState.Status == session.StatusAuthenticated {
		if server := m.endpoints.Get(); server != "" {
			right = headerDimStyle.Render(store.HostOf(server))
		}
		if m.sessionState.Profile != nil {
			name := m.sessionState.Profile.DisplayName()
			if name != "" {
				if right != "" {
					right += headerDimStyle.Render("  ")
				}
				right += headerStyle.Render(name)
			}
		}
		right += " "
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
