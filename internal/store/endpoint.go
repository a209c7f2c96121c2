package store

import (
	"regexp"
	"strings"
	"sync"
)

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// Normalize turns raw user input into a canonical server URL: whitespace
// trimmed, https:// prefixed when no scheme is present, trailing slashes
// stripped. Empty or blank input normalizes to "" (absent). Normalize is
// idempotent.
func Normalize(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if !schemeRe.MatchString(trimmed) {
		trimmed = "https://" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

// EndpointStore holds the normalized base URL of the server instance the
// client talks to. The stored value is read from durable storage once and
// cached; every write updates both.
type EndpointStore struct {
	mu      sync.Mutex
	storage Storage
	cached  string
	known   bool
}

// NewEndpointStore creates an EndpointStore on top of the given storage.
func NewEndpointStore(storage Storage) *EndpointStore {
	return &EndpointStore{storage: storage}
}

// Get returns the normalized server URL, or "" if none is configured.
func (s *EndpointStore) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.known {
		s.cached = Normalize(s.storage.GetString(KeyServerURL))
		s.known = true
	}
	return s.cached
}

// Set normalizes and persists the server URL, returning the normalized form.
// Absent input clears the stored value.
func (s *EndpointStore) Set(input string) string {
	normalized := Normalize(input)
	s.mu.Lock()
	defer s.mu.Unlock()
	if normalized == "" {
		s.storage.Remove(KeyServerURL)
	} else {
		s.storage.Set(KeyServerURL, normalized)
	}
	s.cached = normalized
	s.known = true
	return normalized
}

// Clear removes the stored URL and resets the cache to "unknown" so the next
// Get re-reads storage.
func (s *EndpointStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storage.Remove(KeyServerURL)
	s.cached = ""
	s.known = false
}

// Host returns the configured server URL without its scheme, or "".
func (s *EndpointStore) Host() string {
	return HostOf(s.Get())
}

// APIBaseURL returns the configured server URL with the /api suffix the
// REST contract expects, or "" when no endpoint is configured.
func (s *EndpointStore) APIBaseURL() string {
	return APIBaseOf(s.Get())
}

// HostOf strips the scheme from a normalized server URL.
func HostOf(endpoint string) string {
	return schemeRe.ReplaceAllString(endpoint, "")
}

// APIBaseOf appends /api to a normalized server URL unless already present.
func APIBaseOf(endpoint string) string {
	if endpoint == "" {
		return ""
	}
	if strings.HasSuffix(endpoint, "/api") {
		return endpoint
	}
	return endpoint + "/api"
}
