// Package models contains shared data structures used across the application.
package models

import "strings"

// Project is a single entry in the server's project list.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProjectDetail is the full project record, including its environments and
// the services they contain.
type ProjectDetail struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Environments []Environment `json:"environments,omitempty"`
}

// Environment groups the services of one deployment environment.
type Environment struct {
	EnvironmentID string          `json:"environmentId,omitempty"`
	Name          string          `json:"name,omitempty"`
	Applications  []ServiceRecord `json:"applications,omitempty"`
	Compose       []ServiceRecord `json:"compose,omitempty"`
	MariaDB       []ServiceRecord `json:"mariadb,omitempty"`
	Mongo         []ServiceRecord `json:"mongo,omitempty"`
	MySQL         []ServiceRecord `json:"mysql,omitempty"`
	Postgres      []ServiceRecord `json:"postgres,omitempty"`
	Redis         []ServiceRecord `json:"redis,omitempty"`
}

// ServiceRecord is a service as it appears inside a project environment.
// Status fields vary by service kind; DisplayStatus picks the right one.
type ServiceRecord struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	AppName           string `json:"appName,omitempty"`
	Status            string `json:"status,omitempty"`
	ApplicationStatus string `json:"applicationStatus,omitempty"`
	ComposeStatus     string `json:"composeStatus,omitempty"`
	State             string `json:"state,omitempty"`
}

// DisplayStatus returns the record's status, preferring the kind-specific
// field over the generic ones.
func (r ServiceRecord) DisplayStatus() string {
	for _, s := range []string{r.ComposeStatus, r.ApplicationStatus, r.Status, r.State} {
		if s != "" {
			return strings.ToLower(s)
		}
	}
	return ""
}

// ServiceItem is a flattened service reference used by list views and the
// CLI: one row per service across all environments of a project.
type ServiceItem struct {
	ID          string
	Name        string
	Type        ServiceType
	Environment string
	Status      string
}

// Services flattens a project's environments into one service list.
func (p *ProjectDetail) Services() []ServiceItem {
	var items []ServiceItem
	for _, env := range p.Environments {
		envName := strings.TrimSpace(env.Name)
		if envName == "" {
			envName = "environment"
		}
		sources := []struct {
			list []ServiceRecord
			typ  ServiceType
		}{
			{env.Applications, ServiceApplication},
			{env.Compose, ServiceCompose},
			{env.MariaDB, ServiceMariaDB},
			{env.Mongo, ServiceMongo},
			{env.MySQL, ServiceMySQL},
			{env.Postgres, ServicePostgres},
			{env.Redis, ServiceRedis},
		}
		for _, src := range sources {
			for _, rec := range src.list {
				name := strings.TrimSpace(rec.Name)
				if name == "" {
					name = strings.TrimSpace(rec.ID)
				}
				if name == "" {
					name = string(src.typ)
				}
				items = append(items, ServiceItem{
					ID:          rec.ID,
					Name:        name,
					Type:        src.typ,
					Environment: envName,
					Status:      rec.DisplayStatus(),
				})
			}
		}
	}
	return items
}
