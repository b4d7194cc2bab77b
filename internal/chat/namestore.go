package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NameStore persists the chat username between sessions.
type NameStore interface {
	// LoadName returns the stored username, or "" when none is stored.
	LoadName() (string, error)
	// SaveName stores the username for future sessions.
	SaveName(name string) error
}

// FileNameStore keeps the username in a small file under the user's
// configuration directory.
type FileNameStore struct {
	path string
}

// NewFileNameStore creates a name store under os.UserConfigDir.
func NewFileNameStore() (*FileNameStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("could not resolve config dir: %w", err)
	}
	return &FileNameStore{
		path: filepath.Join(dir, "face-lounge", "chat_username"),
	}, nil
}

// NewFileNameStoreAt creates a name store backed by an explicit path.
func NewFileNameStoreAt(path string) *FileNameStore {
	return &FileNameStore{path: path}
}

func (s *FileNameStore) LoadName() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("could not read username file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileNameStore) SaveName(name string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("could not create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(name+"\n"), 0o600); err != nil {
		return fmt.Errorf("could not write username file: %w", err)
	}
	return nil
}
