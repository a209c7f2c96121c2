package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview-io/harborview/internal/api"
	"github.com/harborview-io/harborview/internal/store"
)

type fixture struct {
	storage     store.Storage
	endpoints   *store.EndpointStore
	credentials *store.CredentialStore
	manager     *Manager
}

func newFixture() *fixture {
	storage := store.NewMemStorage()
	endpoints := store.NewEndpointStore(storage)
	credentials := store.NewCredentialStore(storage)
	client := api.NewClient(endpoints, credentials)
	return &fixture{
		storage:     storage,
		endpoints:   endpoints,
		credentials: credentials,
		manager:     NewManager(client, endpoints, credentials, storage),
	}
}

// okServer accepts any request as the authenticated project list.
func okServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
}

func TestInitializeWithoutCredential(t *testing.T) {
	f := newFixture()
	f.manager.Initialize(context.Background())

	st := f.manager.State()
	assert.Equal(t, StatusUnauthenticated, st.Status)
	assert.Equal(t, "", st.Token)
}

func TestInitializeWithStoredCredentialIsOptimistic(t *testing.T) {
	f := newFixture()
	// No reachable server: restart must still land on authenticated.
	f.endpoints.Set("https://dead.invalid")
	f.credentials.Set("pat-123")

	f.manager.Initialize(context.Background())

	st := f.manager.State()
	assert.Equal(t, StatusAuthenticated, st.Status)
	assert.Equal(t, "pat-123", st.Token)
}

func TestInitializeUsesCachedProfile(t *testing.T) {
	f := newFixture()
	f.credentials.Set("pat-123")
	f.storage.Set(store.KeyProfile, `{"email":"dev@example.com"}`)

	f.manager.Initialize(context.Background())

	st := f.manager.State()
	require.NotNil(t, st.Profile)
	assert.Equal(t, "dev@example.com", st.Profile.Email)
}

func TestAuthenticateCommitsOnSuccess(t *testing.T) {
	srv := okServer()
	defer srv.Close()

	f := newFixture()
	err := f.manager.AuthenticateWithPAT(context.Background(), "  pat-123  ", srv.URL+"/")
	require.NoError(t, err)

	st := f.manager.State()
	assert.Equal(t, StatusAuthenticated, st.Status)
	assert.Equal(t, "pat-123", st.Token)
	assert.Equal(t, store.Normalize(srv.URL), f.endpoints.Get())
	assert.Equal(t, "pat-123", f.credentials.Get())
}

func TestAuthenticateFailureLeavesStoresUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	f := newFixture()
	f.endpoints.Set("https://prior.example.com")
	f.credentials.Set("prior-token")

	err := f.manager.AuthenticateWithPAT(context.Background(), "bad-token", srv.URL)
	require.EqualError(t, err, "invalid personal access token")

	// Neither store moved from its prior value.
	assert.Equal(t, "https://prior.example.com", f.endpoints.Get())
	assert.Equal(t, "prior-token", f.credentials.Get())
}

func TestAuthenticateErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected string
	}{
		{name: "401 maps to invalid token", status: 401, expected: "invalid personal access token"},
		{name: "404 maps to wrong address", status: 404, expected: "invalid server URL, endpoint not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			f := newFixture()
			err := f.manager.AuthenticateWithPAT(context.Background(), "pat-123", srv.URL)
			assert.EqualError(t, err, tt.expected)
		})
	}
}

func TestAuthenticateUnreachableServer(t *testing.T) {
	srv := okServer()
	srv.Close()

	f := newFixture()
	err := f.manager.AuthenticateWithPAT(context.Background(), "pat-123", srv.URL)
	assert.EqualError(t, err, "unable to connect to server")
}

func TestAuthenticateInputValidation(t *testing.T) {
	f := newFixture()

	err := f.manager.AuthenticateWithPAT(context.Background(), "   ", "srv.example.com")
	assert.EqualError(t, err, "personal access token is required")

	err = f.manager.AuthenticateWithPAT(context.Background(), "pat-123", "")
	assert.EqualError(t, err, "server URL is not configured")
}

func TestAuthenticateFallsBackToStoredEndpoint(t *testing.T) {
	srv := okServer()
	defer srv.Close()

	f := newFixture()
	f.endpoints.Set(srv.URL)

	err := f.manager.AuthenticateWithPAT(context.Background(), "pat-123", "")
	require.NoError(t, err)
	assert.Equal(t, StatusAuthenticated, f.manager.State().Status)
}

func TestLogoutKeepsEndpoint(t *testing.T) {
	srv := okServer()
	defer srv.Close()

	f := newFixture()
	require.NoError(t, f.manager.AuthenticateWithPAT(context.Background(), "pat-123", srv.URL))

	f.manager.Logout()

	st := f.manager.State()
	assert.Equal(t, StatusUnauthenticated, st.Status)
	assert.Equal(t, "", st.Token)
	assert.Equal(t, "", f.credentials.Get())
	assert.Equal(t, store.Normalize(srv.URL), f.endpoints.Get(), "endpoint survives logout")
	assert.Equal(t, "", f.storage.GetString(store.KeyProfile))
}

func TestLogoutDiscardsInFlightProfileRefresh(t *testing.T) {
	release := make(chan struct{})
	var served sync.WaitGroup
	served.Add(1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/me" {
			<-release
			w.Write([]byte(`{"email":"old@example.com"}`))
			served.Done()
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	f := newFixture()
	require.NoError(t, f.manager.AuthenticateWithPAT(context.Background(), "pat-123", srv.URL))

	// Log out while the profile fetch is still on the wire.
	f.manager.Logout()
	close(release)
	served.Wait()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, "", f.storage.GetString(store.KeyProfile),
		"stale profile must not be re-persisted after logout")
	assert.Equal(t, StatusUnauthenticated, f.manager.State().Status)
}

func TestMidSessionUnauthorizedForcesLogout(t *testing.T) {
	authorized := true
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ok := authorized
		mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	f := newFixture()
	client := api.NewClient(f.endpoints, f.credentials)
	manager := NewManager(client, f.endpoints, f.credentials, f.storage)
	require.NoError(t, manager.AuthenticateWithPAT(context.Background(), "pat-123", srv.URL))

	// The server starts rejecting the token mid-session.
	mu.Lock()
	authorized = false
	mu.Unlock()

	_, reqErr := client.ListProjects(context.Background())
	require.NotNil(t, reqErr)
	assert.Equal(t, api.KindUnauthorized, reqErr.Kind)

	st := manager.State()
	assert.Equal(t, StatusUnauthenticated, st.Status)
	assert.Equal(t, "", f.credentials.Get())
}

func TestSubscribeFiresCurrentStateFirst(t *testing.T) {
	f := newFixture()

	var states []Status
	cancel := f.manager.Subscribe(func(st State) {
		states = append(states, st.Status)
	})
	defer cancel()

	require.Len(t, states, 1)
	assert.Equal(t, StatusChecking, states[0])

	f.manager.Initialize(context.Background())
	require.Len(t, states, 2)
	assert.Equal(t, StatusUnauthenticated, states[1])
}

func TestSubscribeCancelStopsNotifications(t *testing.T) {
	f := newFixture()

	calls := 0
	cancel := f.manager.Subscribe(func(State) { calls++ })
	cancel()

	f.manager.Initialize(context.Background())
	assert.Equal(t, 1, calls, "only the initial snapshot should have fired")
}

func TestStateInvariantTokenMatchesStatus(t *testing.T) {
	srv := okServer()
	defer srv.Close()

	f := newFixture()
	var mu sync.Mutex
	var snapshots []State
	cancel := f.manager.Subscribe(func(st State) {
		mu.Lock()
		snapshots = append(snapshots, st)
		mu.Unlock()
	})
	defer cancel()

	f.manager.Initialize(context.Background())
	require.NoError(t, f.manager.AuthenticateWithPAT(context.Background(), "pat-123", srv.URL))
	f.manager.Logout()

	// The profile refresh goroutine may still publish one more snapshot.
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for _, st := range snapshots {
		if st.Status == StatusAuthenticated {
			assert.NotEmpty(t, st.Token)
		} else {
			assert.Empty(t, st.Token)
		}
	}
}
