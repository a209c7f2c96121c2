// Package config handles configuration path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global Harborview directory.
	GlobalDirName = ".harborview"

	// StateFileName is the file holding the persisted client state
	// (server URL, access token, cached profile).
	StateFileName = "state.yaml"
)

// GlobalDir returns the path to the global Harborview directory (~/.harborview/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// StateFile returns the path to the state.yaml file.
func StateFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, StateFileName), nil
}

// EnsureGlobalDir creates the global Harborview directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}
