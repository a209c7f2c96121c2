package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/harborview-io/harborview/internal/logstream"
	"github.com/harborview-io/harborview/internal/models"
)

const (
	tabOverview = iota
	tabLogs
)

// LogPanel is the service detail screen: an overview tab with deployments
// and a logs tab driving the service's log stream.
type LogPanel struct {
	serviceType models.ServiceType
	serviceID   string
	serviceName string

	svc         *models.Service
	containerID string
	resolved    bool

	stream *logstream.Client
	params logstream.Params

	tab      int
	viewport viewport.Model
	follow   bool

	editing    bool
	inputs     [4]textinput.Model // tail, since, search, run type
	focusIndex int
	formErr    string

	streamState logstream.ConnState
	streamErr   string

	width  int
	height int
}

// NewLogPanel creates the detail screen for one service.
func NewLogPanel(serviceType models.ServiceType, serviceID, serviceName string, stream *logstream.Client) *LogPanel {
	vp := viewport.New(80, 24)
	return &LogPanel{
		serviceType: serviceType,
		serviceID:   serviceID,
		serviceName: serviceName,
		stream:      stream,
		params:      logstream.DefaultParams(),
		viewport:    vp,
		follow:      true,
		streamState: logstream.StateIdle,
	}
}

// SetSize updates dimensions.
func (lp *LogPanel) SetSize(width, height int) {
	lp.width = width
	lp.height = height
	lp.viewport.Width = width
	vh := height - 4 // tabs, stream status, footer
	if vh < 1 {
		vh = 1
	}
	lp.viewport.Height = vh
}

// SetService records the loaded service detail.
func (lp *LogPanel) SetService(svc *models.Service) {
	lp.svc = svc
	if svc != nil && svc.Name != "" {
		lp.serviceName = svc.Name
	}
}

// SetContainer records the resolved container ID; empty means none found.
func (lp *LogPanel) SetContainer(containerID string) {
	lp.containerID = containerID
	lp.resolved = true
}

// ContainerID returns the resolved container ID, or "".
func (lp *LogPanel) ContainerID() string {
	return lp.containerID
}

// Resolved reports whether container lookup has completed.
func (lp *LogPanel) Resolved() bool {
	return lp.resolved
}

// Service returns the loaded service detail, or nil.
func (lp *LogPanel) Service() *models.Service {
	return lp.svc
}

// Params returns the active stream parameters.
func (lp *LogPanel) Params() logstream.Params {
	return lp.params
}

// Tab returns the active tab.
func (lp *LogPanel) Tab() int {
	return lp.tab
}

// ToggleTab switches between the overview and logs tabs and reports whether
// the logs tab is now active.
func (lp *LogPanel) ToggleTab() bool {
	if lp.tab == tabOverview {
		lp.tab = tabLogs
	} else {
		lp.tab = tabOverview
	}
	return lp.tab == tabLogs
}

// SetStreamState records a stream state transition.
func (lp *LogPanel) SetStreamState(state logstream.ConnState, errMsg string) {
	lp.streamState = state
	lp.streamErr = errMsg
}

// RefreshLines reloads the viewport from the stream buffer.
func (lp *LogPanel) RefreshLines() {
	lines := lp.stream.Lines()
	lp.viewport.SetContent(strings.Join(lines, "\n"))
	if lp.follow {
		lp.viewport.GotoBottom()
	}
}

// ScrollUp scrolls the log viewport and pauses follow mode.
func (lp *LogPanel) ScrollUp() {
	lp.follow = false
	lp.viewport.LineUp(1)
}

// ScrollDown scrolls the log viewport, resuming follow at the bottom.
func (lp *LogPanel) ScrollDown() {
	lp.viewport.LineDown(1)
	if lp.viewport.AtBottom() {
		lp.follow = true
	}
}

// Editing reports whether the parameter form is open.
func (lp *LogPanel) Editing() bool {
	return lp.editing
}

// OpenEditor opens the parameter form prefilled with the active parameters.
func (lp *LogPanel) OpenEditor() {
	labels := [4]string{"100", "all", "", "native"}
	values := [4]string{
		fmt.Sprintf("%d", lp.params.Tail),
		lp.params.Since,
		lp.params.Search,
		lp.params.RunType,
	}
	for i := range lp.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 200
		ti.Width = 24
		ti.SetValue(values[i])
		lp.inputs[i] = ti
	}
	lp.focusIndex = 0
	lp.inputs[0].Focus()
	lp.formErr = ""
	lp.editing = true
}

// CloseEditor discards the parameter form.
func (lp *LogPanel) CloseEditor() {
	lp.editing = false
}

// FocusNext moves to the next form field.
func (lp *LogPanel) FocusNext() {
	lp.inputs[lp.focusIndex].Blur()
	lp.focusIndex = (lp.focusIndex + 1) % len(lp.inputs)
	lp.inputs[lp.focusIndex].Focus()
}

// FocusPrev moves to the previous form field.
func (lp *LogPanel) FocusPrev() {
	lp.inputs[lp.focusIndex].Blur()
	lp.focusIndex--
	if lp.focusIndex < 0 {
		lp.focusIndex = len(lp.inputs) - 1
	}
	lp.inputs[lp.focusIndex].Focus()
}

// FocusedInput returns the focused form input for update forwarding.
func (lp *LogPanel) FocusedInput() *textinput.Model {
	return &lp.inputs[lp.focusIndex]
}

// SubmitEditor validates the form. On success it stores the draft as the
// active parameters, closes the form, and returns them; on failure the form
// stays open showing the error.
func (lp *LogPanel) SubmitEditor() (logstream.Params, bool) {
	tail, err := logstream.ParseTail(lp.inputs[0].Value())
	if err != nil {
		lp.formErr = err.Error()
		return logstream.Params{}, false
	}
	draft := logstream.Params{
		Tail:    tail,
		Since:   strings.TrimSpace(lp.inputs[1].Value()),
		Search:  strings.TrimSpace(lp.inputs[2].Value()),
		RunType: strings.TrimSpace(lp.inputs[3].Value()),
	}
	if draft.Since == "" {
		draft.Since = logstream.DefaultSince
	}
	if draft.RunType == "" {
		draft.RunType = logstream.DefaultRunType
	}
	lp.params = draft
	lp.editing = false
	lp.formErr = ""
	return draft, true
}

// View renders the service detail screen.
func (lp *LogPanel) View() string {
	var parts []string
	parts = append(parts, lp.renderTabs(), "")

	if lp.tab == tabOverview {
		parts = append(parts, lp.renderOverview())
	} else if lp.editing {
		parts = append(parts, lp.renderEditor())
	} else {
		parts = append(parts, lp.renderStreamStatus(), lp.viewport.View())
	}

	return strings.Join(parts, "\n")
}

func (lp *LogPanel) renderTabs() string {
	name := lp.serviceName
	if name == "" {
		name = lp.serviceID
	}
	tabs := []string{"Overview", "Logs"}
	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if i == lp.tab {
			rendered[i] = activeTabStyle.Render(t)
		} else {
			rendered[i] = inactiveTabStyle.Render(t)
		}
	}
	title := headerStyle.Render(ansi.Truncate(name, lp.width/2, "…"))
	return title + "  " + strings.Join(rendered, tabSepStyle.Render(" | "))
}

func (lp *LogPanel) renderOverview() string {
	if lp.svc == nil {
		return dimStyle.Render("Loading service...")
	}

	var lines []string
	row := func(label, value string) string {
		return formLabelStyle.Render(fmt.Sprintf("%-12s", label)) + value
	}
	lines = append(lines, row("Type:", string(lp.serviceType)))
	status := lp.svc.Status
	if status == "" {
		status = "unknown"
	}
	lines = append(lines, row("Status:", statusStyle(status).Render(status)))
	if app := lp.svc.ResolvedAppName(); app != "" {
		lines = append(lines, row("App name:", app))
	}
	if lp.svc.Description != "" {
		lines = append(lines, row("About:", lp.svc.Description))
	}
	if lp.resolved {
		if lp.containerID != "" {
			lines = append(lines, row("Container:", lp.containerID))
		} else {
			lines = append(lines, row("Container:", dimStyle.Render("not found")))
		}
	}

	if len(lp.svc.Deployments) > 0 {
		lines = append(lines, "", sectionHeaderStyle.Render(fmt.Sprintf("Deployments (%d)", len(lp.svc.Deployments))))
		for _, d := range lp.svc.Deployments {
			status := d.Status
			if status == "" {
				status = "unknown"
			}
			line := fmt.Sprintf("  %s %s %s",
				statusStyle(status).Render("●"),
				d.DisplayTitle(),
				dimStyle.Render(d.CreatedAt))
			lines = append(lines, ansi.Truncate(line, lp.width, "…"))
		}
	}

	return strings.Join(lines, "\n")
}

func (lp *LogPanel) renderStreamStatus() string {
	var badge string
	switch lp.streamState {
	case logstream.StateConnected:
		badge = streamConnectedStyle.Render("connected")
	case logstream.StateConnecting:
		badge = streamConnectingStyle.Render("connecting...")
	case logstream.StateError:
		msg := lp.streamErr
		if msg == "" {
			msg = "stream error"
		}
		badge = streamErrorStyle.Render(msg)
	case logstream.StateDisconnected:
		badge = streamIdleStyle.Render("disconnected")
	default:
		badge = streamIdleStyle.Render("idle")
	}
	summary := dimStyle.Render(fmt.Sprintf("tail=%d since=%s", lp.params.Tail, lp.params.Since))
	if lp.params.Search != "" {
		summary += dimStyle.Render(" search=" + lp.params.Search)
	}
	return ansi.Truncate(badge+"  "+summary, lp.width, "…")
}

func (lp *LogPanel) renderEditor() string {
	labels := []string{"Tail:", "Since:", "Search:", "Run type:"}

	parts := make([]string, 0, 12)
	parts = append(parts, formTitleStyle.Render("Log Filters"))
	for i, label := range labels {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Render(label), lp.inputs[i].View(), "")
	}
	if lp.formErr != "" {
		parts = append(parts, formErrorStyle.Render(lp.formErr), "")
	}
	parts = append(parts, dimStyle.Render("Enter apply  |  Tab next field  |  Esc cancel"))

	return panelBorderStyle.Padding(1, 2).Render(strings.Join(parts, "\n"))
}
