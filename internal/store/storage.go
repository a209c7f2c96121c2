// Package store persists the client's server endpoint, access token, and
// cached profile through a small durable key-value layer.
package store

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/harborview-io/harborview/internal/config"
)

// Storage keys.
const (
	KeyServerURL = "server_url"
	KeyToken     = "token"
	KeyProfile   = "profile"
)

// Storage is durable key-value storage. Implementations never surface
// read/write failures: a value that cannot be read is simply absent, because
// every caller has a safe fallback (treat as logged out).
type Storage interface {
	GetString(key string) string
	Set(key, value string)
	Remove(key string)
}

// FileStorage is a Storage backed by a single YAML file. All reads after the
// first are served from memory; writes go through to disk synchronously.
type FileStorage struct {
	mu     sync.Mutex
	path   string
	values map[string]string
	loaded bool
}

// NewFileStorage creates a FileStorage at the given path. An empty path
// yields a purely in-memory store.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// OpenDefault opens the storage file under the global Harborview directory.
// If the directory cannot be resolved, the store degrades to memory-only.
func OpenDefault() *FileStorage {
	path, err := config.StateFile()
	if err != nil {
		return NewFileStorage("")
	}
	if err := config.EnsureGlobalDir(); err != nil {
		return NewFileStorage("")
	}
	return NewFileStorage(path)
}

// NewMemStorage creates an in-memory Storage, used by tests and as the
// fallback when no config directory is available.
func NewMemStorage() Storage {
	return NewFileStorage("")
}

// GetString returns the stored value for key, or "" if absent.
func (s *FileStorage) GetString(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	return s.values[key]
}

// Set writes the value for key and persists it.
func (s *FileStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	s.values[key] = value
	s.flushLocked()
}

// Remove deletes the value for key and persists the change.
func (s *FileStorage) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	delete(s.values, key)
	s.flushLocked()
}

func (s *FileStorage) loadLocked() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.values = make(map[string]string)
	if s.path == "" {
		return
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	// A corrupt file reads as empty.
	_ = yaml.Unmarshal(data, &s.values)
	if s.values == nil {
		s.values = make(map[string]string)
	}
}

func (s *FileStorage) flushLocked() {
	if s.path == "" {
		return
	}
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return
	}
	// The file holds the access token, keep it owner-readable only.
	_ = os.WriteFile(s.path, data, 0600)
}
