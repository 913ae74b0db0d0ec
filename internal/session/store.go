package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const stateFileName = "session.json"

// Store persists session state to a JSON file on disk.
type Store struct {
	path string
}

// NewStore builds a Store rooted in the given state directory.
func NewStore(stateDir string) *Store {
	return &Store{path: filepath.Join(stateDir, stateFileName)}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads session state from disk. A missing file resolves to an empty
// (inactive) session.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Session{}, nil
		}
		return nil, fmt.Errorf("read session state: %w", err)
	}

	var state Session
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &state, nil
}

// Save persists session state to disk with restricted permissions.
func (s *Store) Save(state *Session) error {
	if state == nil {
		return errors.New("nil session")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure session state directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}

// Clear removes the persisted session, tearing the local login down.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session state: %w", err)
	}
	return nil
}
