package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harborview-io/harborview/internal/api"
	"github.com/harborview-io/harborview/internal/logstream"
	"github.com/harborview-io/harborview/internal/models"
	"github.com/harborview-io/harborview/internal/session"
)

// subscribeSessionCmd registers the program as a session subscriber. It runs
// as a command so the initial snapshot is delivered to a live event loop; the
// subscription lasts for the program's lifetime.
func subscribeSessionCmd(sessions *session.Manager, program *programRef) tea.Cmd {
	return func() tea.Msg {
		sessions.Subscribe(func(st session.State) {
			program.send(sessionStateMsg{state: st})
		})
		return nil
	}
}

func initSessionCmd(sessions *session.Manager) tea.Cmd {
	return func() tea.Msg {
		sessions.Initialize(context.Background())
		return nil
	}
}

func authenticateCmd(sessions *session.Manager, token, server string) tea.Cmd {
	return func() tea.Msg {
		err := sessions.AuthenticateWithPAT(context.Background(), token, server)
		return authResultMsg{err: err}
	}
}

func logoutCmd(sessions *session.Manager) tea.Cmd {
	return func() tea.Msg {
		sessions.Logout()
		return nil
	}
}

func loadProjectsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		projects, err := client.ListProjects(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return projectsLoadedMsg{projects: projects}
	}
}

func loadProjectCmd(client *api.Client, projectID string) tea.Cmd {
	return func() tea.Msg {
		detail, err := client.GetProject(context.Background(), projectID)
		if err != nil {
			return errMsg{err: err}
		}
		return projectLoadedMsg{detail: detail}
	}
}

func loadServiceCmd(client *api.Client, serviceType models.ServiceType, serviceID string) tea.Cmd {
	return func() tea.Msg {
		svc, err := client.GetService(context.Background(), serviceType, serviceID)
		if err != nil {
			return errMsg{err: err}
		}
		return serviceLoadedMsg{serviceType: serviceType, serviceID: serviceID, service: svc}
	}
}

func resolveContainerCmd(client *api.Client, serviceID, appName string) tea.Cmd {
	return func() tea.Msg {
		containers, err := client.FindContainers(context.Background(), appName)
		if err != nil {
			return errMsg{err: err}
		}
		return containerResolvedMsg{
			serviceID:   serviceID,
			containerID: models.FirstContainerID(containers),
		}
	}
}

func connectStreamCmd(stream *logstream.Client, target, token string, params logstream.Params) tea.Cmd {
	return func() tea.Msg {
		stream.Connect(target, token, params)
		return nil
	}
}

func applyParamsCmd(stream *logstream.Client, target, token string, params logstream.Params) tea.Cmd {
	return func() tea.Msg {
		if err := stream.ApplyParams(target, token, params); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func disconnectStreamCmd(stream *logstream.Client) tea.Cmd {
	return func() tea.Msg {
		stream.Disconnect()
		return nil
	}
}

func clearErrAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearErrMsg{}
	})
}
