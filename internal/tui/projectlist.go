package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/harborview-io/harborview/internal/models"
)

// ProjectList is the project selection screen.
type ProjectList struct {
	projects     []models.Project
	cursor       int
	scrollOffset int
	height       int
	loading      bool
}

// NewProjectList creates an empty project list in the loading state.
func NewProjectList() *ProjectList {
	return &ProjectList{loading: true}
}

// SetProjects updates the list data and keeps the cursor in bounds.
func (pl *ProjectList) SetProjects(projects []models.Project) {
	pl.projects = projects
	pl.loading = false
	if pl.cursor >= len(pl.projects) {
		pl.cursor = len(pl.projects) - 1
	}
	if pl.cursor < 0 {
		pl.cursor = 0
	}
}

// SetLoading marks the list as waiting on a refresh.
func (pl *ProjectList) SetLoading() {
	pl.loading = true
}

// SetHeight sets the visible height.
func (pl *ProjectList) SetHeight(h int) {
	pl.height = h
}

// Selected returns the project under the cursor, or nil.
func (pl *ProjectList) Selected() *models.Project {
	if pl.cursor < 0 || pl.cursor >= len(pl.projects) {
		return nil
	}
	return &pl.projects[pl.cursor]
}

// MoveUp moves the cursor up.
func (pl *ProjectList) MoveUp() {
	if pl.cursor > 0 {
		pl.cursor--
	}
	pl.ensureVisible()
}

// MoveDown moves the cursor down.
func (pl *ProjectList) MoveDown() {
	if pl.cursor < len(pl.projects)-1 {
		pl.cursor++
	}
	pl.ensureVisible()
}

func (pl *ProjectList) ensureVisible() {
	if pl.cursor < pl.scrollOffset {
		pl.scrollOffset = pl.cursor
	}
	if pl.height > 0 && pl.cursor >= pl.scrollOffset+pl.height {
		pl.scrollOffset = pl.cursor - pl.height + 1
	}
}

// View renders the project list.
func (pl *ProjectList) View(width int) string {
	if pl.loading {
		return dimStyle.Render("Loading projects...")
	}
	if len(pl.projects) == 0 {
		return dimStyle.Render("No projects on this server.")
	}

	var lines []string
	lines = append(lines, sectionHeaderStyle.Render(fmt.Sprintf("Projects (%d)", len(pl.projects))), "")

	end := pl.scrollOffset + pl.height
	if pl.height <= 0 || end > len(pl.projects) {
		end = len(pl.projects)
	}

	for i := pl.scrollOffset; i < end; i++ {
		p := pl.projects[i]
		line := "  " + p.Name
		if p.Description != "" {
			line += dimStyle.Render("  " + p.Description)
		}
		line = ansi.Truncate(line, width, "…")
		if i == pl.cursor {
			line = selectedItemStyle.Render("> " + ansi.Truncate(p.Name, width-2, "…"))
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
