// Package session persists the cached snapshot of the authenticated user
// between runs, the way the browser pages keep it in local storage. The
// snapshot is advisory: it speeds up rendering and fast-fail checks, while
// the server remains the authority on every call.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	model "auction-client/internal/models"
)

// Store reads and writes the single session snapshot file. Writes replace
// the whole snapshot; concurrent flows (login, balance refresh, profile
// update) race last-write-wins, which is acceptable for a cache.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the snapshot under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".auction-client-session.json"
	}
	return filepath.Join(dir, "auction-client", "session.json")
}

// Load returns the stored snapshot. A missing or unreadable file means
// guest: snapshot corruption is never an error the user sees.
func (s *Store) Load() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return model.Guest()
	}

	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return model.Guest()
	}
	return sess
}

// Save overwrites the snapshot wholesale.
func (s *Store) Save(sess model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the snapshot, logging the user out locally.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
