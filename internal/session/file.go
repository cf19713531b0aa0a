// Package session persists the admin credential pair between runs.
// The pair is stored as a small TOML document readable only by the owner.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/artfolio/pkg/artfolio"
	toml "github.com/pelletier/go-toml/v2"
)

// DefaultPath is where credentials are kept unless configured otherwise.
const DefaultPath = "~/.config/artfolio/credentials.toml"

const fileMode = 0o600

// FileStore is an artfolio.CredentialStore backed by a file. The file is
// read once on open; every Set and Clear writes through.
type FileStore struct {
	path string

	mu    sync.RWMutex
	creds *artfolio.Credentials
}

var _ artfolio.CredentialStore = (*FileStore)(nil)

// Open loads the store at path. A missing file yields an empty store. An
// unreadable or malformed file is logged and treated as empty.
func Open(path string) (*FileStore, error) {
	resolved, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	s := &FileStore{path: resolved}

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		log.Warn("Ignoring unreadable credentials file", "path", resolved, "error", err)
		return s, nil
	}

	var creds artfolio.Credentials
	if err := toml.Unmarshal(data, &creds); err != nil {
		log.Warn("Ignoring malformed credentials file", "path", resolved, "error", err)
		return s, nil
	}
	if creds.Username != "" && creds.Password != "" {
		s.creds = &creds
	}
	return s, nil
}

// Path returns the resolved file location.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the stored pair.
func (s *FileStore) Get() (artfolio.Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return artfolio.Credentials{}, false
	}
	return *s.creds, true
}

// Set replaces the stored pair and writes it to disk.
func (s *FileStore) Set(creds artfolio.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(creds); err != nil {
		return err
	}
	s.creds = &creds
	return nil
}

// Clear forgets the pair and removes the file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// write replaces the file atomically through a temp file in the same dir.
func (s *FileStore) write(creds artfolio.Credentials) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := toml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*.toml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace credentials: %w", err)
	}
	return nil
}

// ExpandPath resolves a leading ~ and makes path absolute. An empty path
// resolves to DefaultPath.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = DefaultPath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
