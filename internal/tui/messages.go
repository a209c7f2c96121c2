package tui

import (
	"github.com/harborview-io/harborview/internal/logstream"
	"github.com/harborview-io/harborview/internal/models"
	"github.com/harborview-io/harborview/internal/session"
)

type sessionStateMsg struct {
	state session.State
}

type authResultMsg struct {
	err error
}

type projectsLoadedMsg struct {
	projects []models.Project
}

type projectLoadedMsg struct {
	detail *models.ProjectDetail
}

type serviceLoadedMsg struct {
	serviceType models.ServiceType
	serviceID   string
	service     *models.Service
}

type containerResolvedMsg struct {
	serviceID   string
	containerID string
}

type streamStateMsg struct {
	state logstream.ConnState
	err   string
}

type logLinesMsg struct{}

type errMsg struct {
	err error
}

type clearErrMsg struct{}
