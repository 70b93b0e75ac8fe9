// Package tokenstore persists the session credential across console runs.
// It stores exactly one opaque bearer token in a file scoped to the
// current user.
package tokenstore

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultFileName = "antigravity_token"

// Store reads and writes the single persisted credential.
type Store struct {
	path string
}

// New returns a Store backed by the given file path. An empty path selects
// a per-user default under the OS config directory, falling back to the
// working directory when no config directory is available.
func New(path string) *Store {
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "antigravity", defaultFileName)
		} else {
			path = defaultFileName
		}
	}
	return &Store{path: path}
}

// Save stores the credential, overwriting any prior value. The token
// contents are not validated.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Read returns the stored credential. The second return value is false when
// no credential is stored. Unreadable storage reads as absent, the same as
// never having logged in.
func (s *Store) Read() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// Clear removes the credential. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
