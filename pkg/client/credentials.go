package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/restodeals/backend/pkg/auth"
	"github.com/restodeals/backend/pkg/enums"
)

// CredentialStore keeps the access token on disk between runs, together
// with the role read from the token when it was stored. The role is never
// re-derived on load; it is a cached claim, and the server re-checks it on
// every request anyway.
type CredentialStore struct {
	mu   sync.RWMutex
	path string

	token string
	role  enums.Role
}

type storedCredentials struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// NewCredentialStore loads credentials from path if present. A missing or
// unreadable file starts the store signed out rather than failing.
func NewCredentialStore(path string) (*CredentialStore, error) {
	if path == "" {
		return nil, errors.New("client: credentials path is required")
	}

	store := &CredentialStore{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return store, nil
	}

	var persisted storedCredentials
	if err := json.Unmarshal(raw, &persisted); err != nil {
		return store, nil
	}
	role, err := enums.ParseRole(persisted.Role)
	if err != nil {
		role = enums.RoleNone
	}

	store.token = persisted.Token
	store.role = role
	return store, nil
}

// Set stores the token and caches the role decoded from its payload.
func (s *CredentialStore) Set(token string) error {
	role := auth.RoleFromToken(token)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.role = role
	return s.persist(storedCredentials{Token: token, Role: role.String()})
}

// Clear signs out: memory and disk both forget the credentials.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.role = enums.RoleNone

	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *CredentialStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *CredentialStore) Role() enums.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *CredentialStore) SignedIn() bool {
	return s.Token() != ""
}

func (s *CredentialStore) persist(persisted storedCredentials) error {
	payload, err := json.Marshal(persisted)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, payload, 0o600)
}
