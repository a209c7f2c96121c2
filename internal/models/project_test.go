package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRecordDisplayStatus(t *testing.T) {
	tests := []struct {
		name     string
		record   ServiceRecord
		expected string
	}{
		{
			name:     "compose status wins",
			record:   ServiceRecord{ComposeStatus: "Running", ApplicationStatus: "idle", Status: "done"},
			expected: "running",
		},
		{
			name:     "application status next",
			record:   ServiceRecord{ApplicationStatus: "Error", Status: "done"},
			expected: "error",
		},
		{
			name:     "generic status next",
			record:   ServiceRecord{Status: "Idle", State: "running"},
			expected: "idle",
		},
		{
			name:     "state last",
			record:   ServiceRecord{State: "Exited"},
			expected: "exited",
		},
		{
			name:     "all empty",
			record:   ServiceRecord{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.DisplayStatus())
		})
	}
}

func TestProjectDetailServices(t *testing.T) {
	detail := ProjectDetail{
		Name: "shop",
		Environments: []Environment{
			{
				Name:         "production",
				Applications: []ServiceRecord{{ID: "a1", Name: "web", ApplicationStatus: "Running"}},
				Postgres:     []ServiceRecord{{ID: "d1", Name: "db"}},
			},
			{
				Name:  "staging",
				Redis: []ServiceRecord{{ID: "r1", Name: "cache", Status: "idle"}},
			},
		},
	}

	services := detail.Services()
	require.Len(t, services, 3)

	assert.Equal(t, ServiceItem{ID: "a1", Name: "web", Type: ServiceApplication, Environment: "production", Status: "running"}, services[0])
	assert.Equal(t, ServiceItem{ID: "d1", Name: "db", Type: ServicePostgres, Environment: "production"}, services[1])
	assert.Equal(t, ServiceItem{ID: "r1", Name: "cache", Type: ServiceRedis, Environment: "staging", Status: "idle"}, services[2])
}

func TestProjectDetailServicesFallbackNames(t *testing.T) {
	detail := ProjectDetail{
		Environments: []Environment{
			{
				Compose: []ServiceRecord{{ID: "c1"}, {}},
			},
		},
	}

	services := detail.Services()
	require.Len(t, services, 2)
	assert.Equal(t, "c1", services[0].Name, "ID stands in for a missing name")
	assert.Equal(t, "compose", services[1].Name, "type stands in when both are missing")
	assert.Equal(t, "environment", services[0].Environment, "unnamed environment gets a label")
}

func TestParseServiceType(t *testing.T) {
	for _, typ := range ServiceTypes {
		got, err := ParseServiceType(string(typ))
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	got, err := ParseServiceType("  Postgres ")
	require.NoError(t, err)
	assert.Equal(t, ServicePostgres, got)

	_, err = ParseServiceType("vault")
	assert.EqualError(t, err, `unknown service type "vault"`)
}

func TestResolvedAppName(t *testing.T) {
	assert.Equal(t, "shop-web", (&Service{AppName: "shop-web", Name: "web"}).ResolvedAppName())
	assert.Equal(t, "web", (&Service{Name: "web"}).ResolvedAppName())
	assert.Equal(t, "", (&Service{AppName: "  "}).ResolvedAppName())
}

func TestDeploymentDisplayTitle(t *testing.T) {
	assert.Equal(t, "rollout 4", Deployment{Title: "rollout 4", Name: "d"}.DisplayTitle())
	assert.Equal(t, "d", Deployment{Name: "d"}.DisplayTitle())
	assert.Equal(t, "Deployment", Deployment{}.DisplayTitle())
}

func TestFirstContainerID(t *testing.T) {
	containers := []Container{
		{ID: "fallback-id"},
		{ContainerID: "c2"},
	}
	assert.Equal(t, "fallback-id", FirstContainerID(containers))
	assert.Equal(t, "c2", FirstContainerID(containers[1:]))
	assert.Equal(t, "", FirstContainerID(nil))
	assert.Equal(t, "", FirstContainerID([]Container{{Name: "no ids"}}))
}
