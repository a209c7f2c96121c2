package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview-io/harborview/internal/store"
)

func newTestClient(serverURL, token string) *Client {
	storage := store.NewMemStorage()
	endpoints := store.NewEndpointStore(storage)
	credentials := store.NewCredentialStore(storage)
	if serverURL != "" {
		endpoints.Set(serverURL)
	}
	if token != "" {
		credentials.Set(token)
	}
	return NewClient(endpoints, credentials)
}

func TestDoAttachesStoredCredential(t *testing.T) {
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "pat-123")
	_, reqErr := c.Get(context.Background(), "project.all", nil)

	require.Nil(t, reqErr)
	assert.Equal(t, "pat-123", gotKey)
	assert.Equal(t, "/api/project.all", gotPath)
}

func TestDoCallerIdentityHeaderWins(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "stored-token")
	header := http.Header{}
	header.Set("x-api-key", "explicit-token")
	_, reqErr := c.Do(context.Background(), RequestOptions{Path: "auth/me", Header: header})

	require.Nil(t, reqErr)
	assert.Equal(t, "explicit-token", gotKey)
}

func TestDoQueryEncoding(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "pat-123")
	_, reqErr := c.Get(context.Background(), "project.one", url.Values{"projectId": {"p1"}})

	require.Nil(t, reqErr)
	assert.Equal(t, "p1", gotQuery.Get("projectId"))
}

func TestDoEndpointNotConfigured(t *testing.T) {
	c := newTestClient("", "")
	_, reqErr := c.Get(context.Background(), "project.all", nil)

	require.NotNil(t, reqErr)
	assert.Equal(t, KindGeneric, reqErr.Kind)
	assert.Equal(t, "server endpoint not configured", reqErr.Message)
}

func TestDoNetworkUnreachable(t *testing.T) {
	// A closed server yields a transport error with no HTTP response.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(srv.URL, "pat-123")
	_, reqErr := c.Get(context.Background(), "project.all", nil)

	require.NotNil(t, reqErr)
	assert.Equal(t, KindNetworkUnreachable, reqErr.Kind)
	assert.Equal(t, "unable to reach server", reqErr.Message)
}

func TestDoUnauthorizedFiresHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"expired"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "pat-123")
	fired := 0
	c.SetUnauthorizedHandler(func() { fired++ })

	_, reqErr := c.Get(context.Background(), "project.all", nil)

	require.NotNil(t, reqErr)
	assert.Equal(t, KindUnauthorized, reqErr.Kind)
	assert.Equal(t, "expired", reqErr.Message)
	assert.Equal(t, 1, fired)
}

func TestProbeDoesNotFireUnauthorizedHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient("", "")
	fired := 0
	c.SetUnauthorizedHandler(func() { fired++ })

	reqErr := c.Probe(context.Background(), srv.URL, "candidate-token")

	require.NotNil(t, reqErr)
	assert.Equal(t, KindUnauthorized, reqErr.Kind)
	assert.Equal(t, 0, fired)
}

func TestProbeBypassesStores(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	// Stores point at a dead endpoint with a different token; the probe must
	// use its own pair.
	c := newTestClient("https://dead.invalid", "stored-token")
	reqErr := c.Probe(context.Background(), srv.URL, "candidate-token")

	require.Nil(t, reqErr)
	assert.Equal(t, "candidate-token", gotKey)
}

func TestProbeClassifies404AsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient("", "")
	reqErr := c.Probe(context.Background(), srv.URL, "candidate-token")

	require.NotNil(t, reqErr)
	assert.Equal(t, KindNotFound, reqErr.Kind)
}

func TestGetProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/project.one", r.URL.Path)
		assert.Equal(t, "p1", r.URL.Query().Get("projectId"))
		w.Write([]byte(`{
			"id": "p1",
			"name": "shop",
			"environments": [{
				"name": "production",
				"applications": [{"id": "a1", "name": "web", "applicationStatus": "Running"}],
				"postgres": [{"id": "d1", "name": "db", "status": "idle"}]
			}]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "pat-123")
	detail, reqErr := c.GetProject(context.Background(), "p1")

	require.Nil(t, reqErr)
	services := detail.Services()
	require.Len(t, services, 2)
	assert.Equal(t, "web", services[0].Name)
	assert.Equal(t, "running", services[0].Status)
	assert.Equal(t, "production", services[0].Environment)
	assert.Equal(t, "db", services[1].Name)
}

func TestListProjectsWrappedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"projects":[{"id":"p1","name":"shop"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "pat-123")
	projects, reqErr := c.ListProjects(context.Background())

	require.Nil(t, reqErr)
	require.Len(t, projects, 1)
	assert.Equal(t, "shop", projects[0].Name)
}

func TestFindContainers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/docker.getContainersByAppNameMatch", r.URL.Path)
		assert.Equal(t, "shop-web", r.URL.Query().Get("appName"))
		w.Write([]byte(`{"containers":[{"containerId":"c1","name":"shop-web-1"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "pat-123")
	containers, reqErr := c.FindContainers(context.Background(), "shop-web")

	require.Nil(t, reqErr)
	require.Len(t, containers, 1)
	assert.Equal(t, "c1", containers[0].ContainerID)
}
