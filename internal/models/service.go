package models

import (
	"fmt"
	"strings"
)

// ServiceType identifies the kind of a deployed service. It selects both the
// detail endpoint and the ID parameter name used to fetch the service.
type ServiceType string

const (
	ServiceApplication ServiceType = "application"
	ServiceCompose     ServiceType = "compose"
	ServiceMariaDB     ServiceType = "mariadb"
	ServiceMongo       ServiceType = "mongo"
	ServiceMySQL       ServiceType = "mysql"
	ServicePostgres    ServiceType = "postgres"
	ServiceRedis       ServiceType = "redis"
)

// ServiceTypes lists all known service types, in display order.
var ServiceTypes = []ServiceType{
	ServiceApplication,
	ServiceCompose,
	ServiceMariaDB,
	ServiceMongo,
	ServiceMySQL,
	ServicePostgres,
	ServiceRedis,
}

// ParseServiceType validates a user-supplied service type string.
func ParseServiceType(s string) (ServiceType, error) {
	t := ServiceType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ServiceTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown service type %q", s)
}

// Service is the detail record of a single service.
type Service struct {
	ID            string       `json:"id,omitempty"`
	ApplicationID string       `json:"applicationId,omitempty"`
	Name          string       `json:"name,omitempty"`
	AppName       string       `json:"appName,omitempty"`
	Description   string       `json:"description,omitempty"`
	Status        string       `json:"applicationStatus,omitempty"`
	Deployments   []Deployment `json:"deployments,omitempty"`
}

// ResolvedAppName returns the physical application name used for container
// lookup, falling back to the display name. Empty means unresolved.
func (s *Service) ResolvedAppName() string {
	if name := strings.TrimSpace(s.AppName); name != "" {
		return name
	}
	return strings.TrimSpace(s.Name)
}

// Deployment is one deployment run of a service.
type Deployment struct {
	DeploymentID string `json:"deploymentId,omitempty"`
	Title        string `json:"title,omitempty"`
	Name         string `json:"name,omitempty"`
	Status       string `json:"status,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	StartedAt    string `json:"startedAt,omitempty"`
	FinishedAt   string `json:"finishedAt,omitempty"`
}

// DisplayTitle returns the deployment's title, or a fallback if unset.
func (d Deployment) DisplayTitle() string {
	if t := strings.TrimSpace(d.Title); t != "" {
		return t
	}
	if n := strings.TrimSpace(d.Name); n != "" {
		return n
	}
	return "Deployment"
}

// Container identifies a running container backing a service.
type Container struct {
	ContainerID string `json:"containerId,omitempty"`
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	State       string `json:"state,omitempty"`
}

// FirstContainerID returns the first usable container identifier in the
// list, or "" when none resolves.
func FirstContainerID(containers []Container) string {
	for _, c := range containers {
		if id := strings.TrimSpace(c.ContainerID); id != "" {
			return id
		}
		if id := strings.TrimSpace(c.ID); id != "" {
			return id
		}
	}
	return ""
}
