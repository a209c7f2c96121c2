package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/harborview-io/harborview/internal/models"
)

// ServiceList shows the services of one project, grouped by environment.
type ServiceList struct {
	projectName  string
	items        []serviceItem
	cursor       int
	scrollOffset int
	height       int
	loading      bool
}

type serviceItem struct {
	service   *models.ServiceItem
	isHeader  bool
	headerStr string
}

// NewServiceList creates an empty service list in the loading state.
func NewServiceList(projectName string) *ServiceList {
	return &ServiceList{projectName: projectName, loading: true}
}

// SetDetail rebuilds the list from a loaded project detail.
func (sl *ServiceList) SetDetail(detail *models.ProjectDetail) {
	sl.loading = false
	sl.projectName = detail.Name

	services := detail.Services()

	var items []serviceItem
	lastEnv := ""
	for si := range services {
		svc := &services[si]
		if svc.Environment != lastEnv {
			lastEnv = svc.Environment
			count := 0
			for _, s := range services {
				if s.Environment == lastEnv {
					count++
				}
			}
			items = append(items, serviceItem{
				isHeader:  true,
				headerStr: fmt.Sprintf("%s (%d)", lastEnv, count),
			})
		}
		items = append(items, serviceItem{service: svc})
	}
	sl.items = items

	if sl.cursor >= len(sl.items) {
		sl.cursor = len(sl.items) - 1
	}
	if sl.cursor < 0 {
		sl.cursor = 0
	}
	sl.skipHeaders(1)
}

// SetLoading marks the list as waiting on a refresh.
func (sl *ServiceList) SetLoading() {
	sl.loading = true
}

// SetHeight sets the visible height.
func (sl *ServiceList) SetHeight(h int) {
	sl.height = h
}

// Selected returns the service under the cursor, or nil.
func (sl *ServiceList) Selected() *models.ServiceItem {
	if sl.cursor < 0 || sl.cursor >= len(sl.items) {
		return nil
	}
	item := sl.items[sl.cursor]
	if item.isHeader {
		return nil
	}
	return item.service
}

// MoveUp moves the cursor up, skipping headers.
func (sl *ServiceList) MoveUp() {
	if len(sl.items) == 0 {
		return
	}
	sl.cursor--
	if sl.cursor < 0 {
		sl.cursor = 0
	}
	sl.skipHeaders(-1)
	sl.ensureVisible()
}

// MoveDown moves the cursor down, skipping headers.
func (sl *ServiceList) MoveDown() {
	if len(sl.items) == 0 {
		return
	}
	sl.cursor++
	if sl.cursor >= len(sl.items) {
		sl.cursor = len(sl.items) - 1
	}
	sl.skipHeaders(1)
	sl.ensureVisible()
}

func (sl *ServiceList) skipHeaders(direction int) {
	for sl.cursor >= 0 && sl.cursor < len(sl.items) && sl.items[sl.cursor].isHeader {
		sl.cursor += direction
	}
	if sl.cursor < 0 {
		sl.cursor = 0
		for sl.cursor < len(sl.items) && sl.items[sl.cursor].isHeader {
			sl.cursor++
		}
	}
	if sl.cursor >= len(sl.items) {
		sl.cursor = len(sl.items) - 1
		for sl.cursor >= 0 && sl.items[sl.cursor].isHeader {
			sl.cursor--
		}
	}
}

func (sl *ServiceList) ensureVisible() {
	if sl.cursor < sl.scrollOffset {
		sl.scrollOffset = sl.cursor
	}
	if sl.height > 0 && sl.cursor >= sl.scrollOffset+sl.height {
		sl.scrollOffset = sl.cursor - sl.height + 1
	}
}

// View renders the service list.
func (sl *ServiceList) View(width int) string {
	if sl.loading {
		return dimStyle.Render("Loading services...")
	}
	if len(sl.items) == 0 {
		return dimStyle.Render("No services in this project.")
	}

	var lines []string
	lines = append(lines, sectionHeaderStyle.Render(sl.projectName), "")

	end := sl.scrollOffset + sl.height
	if sl.height <= 0 || end > len(sl.items) {
		end = len(sl.items)
	}

	for i := sl.scrollOffset; i < end; i++ {
		item := sl.items[i]

		if item.isHeader {
			line := sectionHeaderStyle.Render(item.headerStr)
			if i > 0 {
				line = "\n" + line
			}
			lines = append(lines, line)
			continue
		}

		svc := item.service
		status := svc.Status
		if status == "" {
			status = "unknown"
		}
		line := fmt.Sprintf("  %s %s %s",
			statusStyle(status).Render("●"),
			svc.Name,
			dimStyle.Render(string(svc.Type)))
		line = ansi.Truncate(line, width, "…")
		if i == sl.cursor {
			line = selectedItemStyle.Render(ansi.Truncate(fmt.Sprintf("> %s %s", svc.Name, string(svc.Type)), width, "…"))
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
