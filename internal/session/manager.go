// Package session manages the authentication session: a small state machine
// that is the single authority for "are we logged in". It is constructed
// once at the composition root and injected wherever session status is
// consumed; there is no global session state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/harborview-io/harborview/internal/api"
	"github.com/harborview-io/harborview/internal/models"
	"github.com/harborview-io/harborview/internal/store"
)

// Status is the authentication state.
type Status string

const (
	// StatusChecking is the initial state while storage is read.
	StatusChecking Status = "checking"
	// StatusAuthenticated means a credential exists and requests carry it.
	StatusAuthenticated Status = "authenticated"
	// StatusUnauthenticated means no usable credential exists.
	StatusUnauthenticated Status = "unauthenticated"
)

// State is a snapshot of the session handed to subscribers. The invariant
// Status==StatusAuthenticated iff Token != "" holds for every snapshot.
type State struct {
	Status  Status
	Token   string
	Profile *models.Profile
}

// Manager drives the session state machine. All transitions go through it;
// UI code never mutates session state directly.
type Manager struct {
	client      *api.Client
	endpoints   *store.EndpointStore
	credentials *store.CredentialStore
	storage     store.Storage

	mu          sync.Mutex
	status      Status
	token       string
	profile     *models.Profile
	subscribers map[int]func(State)
	nextSubID   int
}

// NewManager creates a Manager and registers it as the client's forced-logout
// handler for mid-session 401 responses.
func NewManager(client *api.Client, endpoints *store.EndpointStore, credentials *store.CredentialStore, storage store.Storage) *Manager {
	m := &Manager{
		client:      client,
		endpoints:   endpoints,
		credentials: credentials,
		storage:     storage,
		status:      StatusChecking,
		subscribers: make(map[int]func(State)),
	}
	client.SetUnauthorizedHandler(m.ForceLogout)
	return m
}

// Subscribe registers a callback for session state changes and returns a
// cancel function. The callback is invoked with the current state first.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	state := m.stateLocked()
	m.mu.Unlock()

	fn(state)
	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

// State returns the current session snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

// Token returns the current credential, or "" when unauthenticated.
func (m *Manager) Token() string {
	return m.State().Token
}

func (m *Manager) stateLocked() State {
	return State{Status: m.status, Token: m.token, Profile: m.profile}
}

func (m *Manager) setState(status Status, token string, profile *models.Profile) {
	m.mu.Lock()
	m.status = status
	m.token = token
	m.profile = profile
	state := m.stateLocked()
	subs := make([]func(State), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// Initialize restores the session from storage. A stored credential yields
// authenticated immediately, without a blocking network round trip; the
// profile is refreshed asynchronously, and a refresh failure on its own
// never reverts the session. Only an explicit 401 from a later call does.
func (m *Manager) Initialize(ctx context.Context) {
	token := m.credentials.Get()
	if token == "" {
		m.setState(StatusUnauthenticated, "", nil)
		return
	}

	profile := m.cachedProfile()
	m.setState(StatusAuthenticated, token, profile)

	if profile == nil {
		go m.refreshProfile(ctx)
	}
}

// AuthenticateWithPAT validates a token and server address pair and, on
// success, commits both to storage and transitions to authenticated. On any
// failure neither store is mutated from its prior value.
func (m *Manager) AuthenticateWithPAT(ctx context.Context, rawToken, endpointInput string) error {
	token := strings.TrimSpace(rawToken)
	endpoint := store.Normalize(endpointInput)
	if endpoint == "" {
		endpoint = m.endpoints.Get()
	}

	if token == "" {
		return errors.New("personal access token is required")
	}
	if endpoint == "" {
		return errors.New("server URL is not configured")
	}

	if reqErr := m.client.Probe(ctx, endpoint, token); reqErr != nil {
		switch reqErr.Kind {
		case api.KindUnauthorized:
			return errors.New("invalid personal access token")
		case api.KindNotFound:
			return errors.New("invalid server URL, endpoint not found")
		case api.KindNetworkUnreachable:
			return errors.New("unable to connect to server")
		default:
			return reqErr
		}
	}

	// Endpoint and credential are committed together, only on full success.
	m.endpoints.Set(endpoint)
	m.credentials.Set(token)
	m.setState(StatusAuthenticated, token, nil)

	go m.refreshProfile(ctx)
	return nil
}

// Logout clears the credential and cached profile and transitions to
// unauthenticated, whether or not a session existed. The endpoint is kept so
// the next login pre-fills the server address.
func (m *Manager) Logout() {
	m.credentials.Clear()
	m.storage.Remove(store.KeyProfile)
	m.setState(StatusUnauthenticated, "", nil)
}

// ForceLogout is the 401 reaction: identical to Logout, wired as the HTTP
// client's unauthorized handler.
func (m *Manager) ForceLogout() {
	m.Logout()
}

// refreshProfile fetches and caches the account record. Failure is ignored;
// the cached profile, if any, remains in use.
func (m *Manager) refreshProfile(ctx context.Context) {
	profile, reqErr := m.client.GetProfile(ctx)
	if reqErr != nil {
		return
	}

	m.mu.Lock()
	if m.status != StatusAuthenticated {
		// A logout raced the fetch; do not re-persist the old profile.
		m.mu.Unlock()
		return
	}
	token := m.token
	m.mu.Unlock()

	if data, err := json.Marshal(profile); err == nil {
		m.storage.Set(store.KeyProfile, string(data))
	}
	m.setState(StatusAuthenticated, token, profile)
}

// cachedProfile reads the profile persisted beside the credential.
func (m *Manager) cachedProfile() *models.Profile {
	raw := m.storage.GetString(store.KeyProfile)
	if raw == "" {
		return nil
	}
	var profile models.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil
	}
	return &profile
}
