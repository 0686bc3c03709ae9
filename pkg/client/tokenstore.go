// Copyright (c) 2026 Pulseboard. All rights reserved.

package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tokenFileMode keeps the session token readable by the owner only.
const tokenFileMode = 0o600

// FileTokenStore persists the session token in a file under the user's
// config directory, one session per machine user. Concurrent writers are
// last-write-wins, matching the single-session model of the dashboard.
type FileTokenStore struct {
	path string
}

/*
NewFileTokenStore creates a token store at the default location
(<user config dir>/pulseboard/token).

Returns:
  - *FileTokenStore
  - error: When the config directory cannot be resolved or created
*/
func NewFileTokenStore() (*FileTokenStore, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("client: resolve config dir: %w", err)
	}

	dir := filepath.Join(configDir, "pulseboard")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("client: create config dir: %w", err)
	}

	return &FileTokenStore{path: filepath.Join(dir, "token")}, nil
}

// NewFileTokenStoreAt creates a token store at an explicit file path. The
// parent directory must exist.
func NewFileTokenStoreAt(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Save writes the token, replacing any previous one.
func (store *FileTokenStore) Save(token string) error {
	if err := os.WriteFile(store.path, []byte(token), tokenFileMode); err != nil {
		return fmt.Errorf("client: save token: %w", err)
	}
	return nil
}

// Load reads the stored token. A missing file is not an error; it returns
// the empty string, meaning no session.
func (store *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("client: load token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear removes the stored token. Clearing an absent token is a no-op.
func (store *FileTokenStore) Clear() error {
	if err := os.Remove(store.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("client: clear token: %w", err)
	}
	return nil
}
