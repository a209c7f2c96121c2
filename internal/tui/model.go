package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harborview-io/harborview/internal/api"
	"github.com/harborview-io/harborview/internal/logstream"
	"github.com/harborview-io/harborview/internal/models"
	"github.com/harborview-io/harborview/internal/session"
	"github.com/harborview-io/harborview/internal/store"
)

// View identifiers.
const (
	viewChecking = iota
	viewLogin
	viewProjects
	viewServices
	viewService
)

// Model is the root Bubbletea model for the TUI.
type Model struct {
	sessions  *session.Manager
	client    *api.Client
	endpoints *store.EndpointStore
	program   *programRef

	view   int
	width  int
	height int

	sessionState session.State

	// Child components
	login    *LoginForm
	projects *ProjectList
	services *ServiceList
	panel    *LogPanel

	// stream lives for the duration of one service view
	stream *logstream.Client

	project *models.Project

	err error
}

func newModel(sessions *session.Manager, client *api.Client, endpoints *store.EndpointStore, program *programRef) Model {
	return Model{
		sessions:  sessions,
		client:    client,
		endpoints: endpoints,
		program:   program,
		view:      viewChecking,
	}
}

// Init returns the initial commands. Subscription comes first so the
// restore's state transitions are observed.
func (m Model) Init() tea.Cmd {
	return tea.Sequence(
		subscribeSessionCmd(m.sessions, m.program),
		initSessionCmd(m.sessions),
	)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionStateMsg:
		return m.handleSessionState(msg.state)

	case authResultMsg:
		if m.login != nil {
			m.login.SetSubmitting(false)
			if msg.err != nil {
				m.login.SetError(msg.err.Error())
			}
		}
		return m, nil

	case projectsLoadedMsg:
		if m.projects != nil {
			m.projects.SetProjects(msg.projects)
		}
		return m, nil

	case projectLoadedMsg:
		if m.services != nil && m.project != nil && msg.detail.ID == m.project.ID {
			m.services.SetDetail(msg.detail)
		}
		return m, nil

	case serviceLoadedMsg:
		if m.panel == nil || msg.serviceID != m.panel.serviceID {
			return m, nil
		}
		m.panel.SetService(msg.service)
		appName := msg.service.ResolvedAppName()
		if appName == "" {
			m.panel.SetContainer("")
			return m, nil
		}
		return m, resolveContainerCmd(m.client, msg.serviceID, appName)

	case containerResolvedMsg:
		if m.panel == nil || msg.serviceID != m.panel.serviceID {
			return m, nil
		}
		m.panel.SetContainer(msg.containerID)
		if m.panel.Tab() == tabLogs {
			return m, m.connectStream()
		}
		return m, nil

	case streamStateMsg:
		if m.panel != nil {
			m.panel.SetStreamState(msg.state, msg.err)
		}
		return m, nil

	case logLinesMsg:
		if m.panel != nil {
			m.panel.RefreshLines()
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, clearErrAfter(4 * time.Second)

	case clearErrMsg:
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m Model) handleSessionState(st session.State) (tea.Model, tea.Cmd) {
	m.sessionState = st

	switch st.Status {
	case session.StatusUnauthenticated:
		var cmd tea.Cmd
		if m.stream != nil {
			cmd = disconnectStreamCmd(m.stream)
		}
		m.stream = nil
		m.panel = nil
		m.services = nil
		m.projects = nil
		m.project = nil
		if m.view != viewLogin {
			m.login = NewLoginForm(m.endpoints.Get(), m.width)
			m.view = viewLogin
		}
		return m, cmd

	case session.StatusAuthenticated:
		if m.view == viewLogin || m.view == viewChecking {
			m.login = nil
			m.projects = NewProjectList()
			m.view = viewProjects
			m.updateDimensions()
			return m, loadProjectsCmd(m.client)
		}
	}

	return m, nil
}

func (m *Model) updateDimensions() {
	contentHeight := m.height - 3 // header, spacer, status bar
	if contentHeight < 1 {
		contentHeight = 1
	}
	if m.login != nil {
		m.login.SetWidth(m.width)
	}
	if m.projects != nil {
		m.projects.SetHeight(contentHeight - 2)
	}
	if m.services != nil {
		m.services.SetHeight(contentHeight - 2)
	}
	if m.panel != nil {
		m.panel.SetSize(m.width, contentHeight)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, globalKeys.Quit) {
		var cmds []tea.Cmd
		if m.stream != nil {
			cmds = append(cmds, disconnectStreamCmd(m.stream))
		}
		cmds = append(cmds, tea.Quit)
		return m, tea.Sequence(cmds...)
	}

	switch m.view {
	case viewLogin:
		return m.handleLoginKey(msg)
	case viewProjects:
		return m.handleProjectsKey(msg)
	case viewServices:
		return m.handleServicesKey(msg)
	case viewService:
		return m.handleServiceKey(msg)
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login == nil || m.login.Submitting() {
		return m, nil
	}

	switch {
	case key.Matches(msg, formKeys.Next):
		m.login.FocusNext()
		return m, nil
	case key.Matches(msg, formKeys.Prev):
		m.login.FocusPrev()
		return m, nil
	case key.Matches(msg, formKeys.Submit):
		m.login.SetError("")
		m.login.SetSubmitting(true)
		return m, authenticateCmd(m.sessions, m.login.Token(), m.login.Server())
	}

	var cmd tea.Cmd
	if m.login.FocusIndex() == 0 {
		in := m.login.ServerInput()
		*in, cmd = in.Update(msg)
	} else {
		in := m.login.TokenInput()
		*in, cmd = in.Update(msg)
	}
	return m, cmd
}

func (m Model) handleProjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.projects == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, listKeys.Up):
		m.projects.MoveUp()
	case key.Matches(msg, listKeys.Down):
		m.projects.MoveDown()
	case key.Matches(msg, listKeys.Refresh):
		m.projects.SetLoading()
		return m, loadProjectsCmd(m.client)
	case key.Matches(msg, listKeys.Logout):
		return m, logoutCmd(m.sessions)
	case key.Matches(msg, listKeys.Enter):
		selected := m.projects.Selected()
		if selected == nil {
			return m, nil
		}
		p := *selected
		m.project = &p
		m.services = NewServiceList(p.Name)
		m.view = viewServices
		m.updateDimensions()
		return m, loadProjectCmd(m.client, p.ID)
	}
	return m, nil
}

func (m Model) handleServicesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.services == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, listKeys.Up):
		m.services.MoveUp()
	case key.Matches(msg, listKeys.Down):
		m.services.MoveDown()
	case key.Matches(msg, listKeys.Back):
		m.services = nil
		m.project = nil
		m.view = viewProjects
		return m, nil
	case key.Matches(msg, listKeys.Refresh):
		if m.project != nil {
			m.services.SetLoading()
			return m, loadProjectCmd(m.client, m.project.ID)
		}
	case key.Matches(msg, listKeys.Enter):
		svc := m.services.Selected()
		if svc == nil {
			return m, nil
		}
		return m.openService(svc)
	}
	return m, nil
}

func (m Model) openService(svc *models.ServiceItem) (tea.Model, tea.Cmd) {
	endpoint := m.endpoints.Get()
	if endpoint == "" {
		m.err = errors.New("server endpoint not configured")
		return m, clearErrAfter(4 * time.Second)
	}

	program := m.program
	m.stream = logstream.New(endpoint, logstream.Events{
		OnState: func(state logstream.ConnState, errText string) {
			program.send(streamStateMsg{state: state, err: errText})
		},
		OnLines: func([]string) {
			program.send(logLinesMsg{})
		},
	})
	m.panel = NewLogPanel(svc.Type, svc.ID, svc.Name, m.stream)
	m.view = viewService
	m.updateDimensions()
	return m, loadServiceCmd(m.client, svc.Type, svc.ID)
}

func (m Model) handleServiceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.panel == nil {
		return m, nil
	}

	if m.panel.Editing() {
		return m.handleFilterFormKey(msg)
	}

	switch {
	case key.Matches(msg, serviceKeys.Back):
		stream := m.stream
		m.stream = nil
		m.panel = nil
		m.view = viewServices
		if stream != nil {
			return m, disconnectStreamCmd(stream)
		}
		return m, nil

	case key.Matches(msg, serviceKeys.Tab):
		logsActive := m.panel.ToggleTab()
		if logsActive && m.panel.Resolved() {
			snap := m.stream.State()
			if snap.State == logstream.StateIdle || snap.State == logstream.StateDisconnected {
				return m, m.connectStream()
			}
			m.panel.RefreshLines()
		}
		return m, nil
	}

	if m.panel.Tab() != tabLogs {
		return m, nil
	}

	switch {
	case key.Matches(msg, serviceKeys.Edit):
		m.panel.OpenEditor()
	case key.Matches(msg, serviceKeys.Reconnect):
		if m.panel.Resolved() {
			return m, m.connectStream()
		}
	case key.Matches(msg, serviceKeys.Disconnect):
		if m.stream != nil {
			return m, disconnectStreamCmd(m.stream)
		}
	case key.Matches(msg, serviceKeys.Clear):
		if m.stream != nil {
			m.stream.ClearBuffer()
			m.panel.RefreshLines()
		}
	case key.Matches(msg, serviceKeys.Up):
		m.panel.ScrollUp()
	case key.Matches(msg, serviceKeys.Down):
		m.panel.ScrollDown()
	}
	return m, nil
}

func (m Model) handleFilterFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, formKeys.Cancel):
		m.panel.CloseEditor()
		return m, nil
	case key.Matches(msg, formKeys.Next):
		m.panel.FocusNext()
		return m, nil
	case key.Matches(msg, formKeys.Prev):
		m.panel.FocusPrev()
		return m, nil
	case key.Matches(msg, formKeys.Submit):
		params, ok := m.panel.SubmitEditor()
		if !ok {
			return m, nil
		}
		return m, applyParamsCmd(m.stream, m.panel.ContainerID(), m.sessions.Token(), params)
	}

	var cmd tea.Cmd
	in := m.panel.FocusedInput()
	*in, cmd = in.Update(msg)
	return m, cmd
}

// connectStream opens the stream for the panel's resolved container.
func (m *Model) connectStream() tea.Cmd {
	if m.stream == nil || m.panel == nil {
		return nil
	}
	return connectStreamCmd(m.stream, m.panel.ContainerID(), m.sessions.Token(), m.panel.Params())
}

// View renders the full screen.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var content string
	switch m.view {
	case viewChecking:
		content = dimStyle.Render("Checking session...")
	case viewLogin:
		if m.login != nil {
			content = m.login.View()
		}
	case viewProjects:
		if m.projects != nil {
			content = m.projects.View(m.width)
		}
	case viewServices:
		if m.services != nil {
			content = m.services.View(m.width)
		}
	case viewService:
		if m.panel != nil {
			content = m.panel.View()
		}
	}

	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	body := lipgloss.NewStyle().Width(m.width).Height(contentHeight).Render(content)

	return strings.Join([]string{
		m.renderHeader(),
		body,
		m.renderStatusBar(),
	}, "\n")
}
