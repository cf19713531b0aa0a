package artfolio

import "sync"

// Credentials is the admin username/password pair sent as basic auth.
type Credentials struct {
	Username string `json:"username" toml:"username"`
	Password string `json:"password" toml:"password"`
}

// CredentialStore holds the single admin credential pair. Presence of a pair
// is the only signal that an admin is logged in.
// Implementations must be safe for concurrent use; Get must never observe a
// half-written pair.
type CredentialStore interface {
	Get() (Credentials, bool)
	Set(Credentials) error
	Clear() error
}

var _ CredentialStore = (*MemoryStore)(nil)

// MemoryStore is a process-local CredentialStore.
type MemoryStore struct {
	mu    sync.RWMutex
	creds *Credentials
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return Credentials{}, false
	}
	return *s.creds, true
}

func (s *MemoryStore) Set(c Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = &c
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}
