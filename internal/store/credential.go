package store

import "sync"

// CredentialStore holds the personal access token as an opaque string. No
// normalization is applied beyond what the caller provides. A credential is
// meaningless without its endpoint; the session manager writes and clears
// them together.
type CredentialStore struct {
	mu      sync.Mutex
	storage Storage
	cached  string
	known   bool
}

// NewCredentialStore creates a CredentialStore on top of the given storage.
func NewCredentialStore(storage Storage) *CredentialStore {
	return &CredentialStore{storage: storage}
}

// Get returns the stored token, or "" if none exists.
func (s *CredentialStore) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.known {
		s.cached = s.storage.GetString(KeyToken)
		s.known = true
	}
	return s.cached
}

// Set persists the token and updates the cache.
func (s *CredentialStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" {
		s.storage.Remove(KeyToken)
	} else {
		s.storage.Set(KeyToken, token)
	}
	s.cached = token
	s.known = true
}

// Clear removes the stored token and resets the cache to "unknown" so the
// next Get re-reads storage.
func (s *CredentialStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storage.Remove(KeyToken)
	s.cached = ""
	s.known = false
}
