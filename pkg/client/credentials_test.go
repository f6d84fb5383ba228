package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	pkgauth "github.com/restodeals/backend/pkg/auth"
	"github.com/restodeals/backend/pkg/config"
	"github.com/restodeals/backend/pkg/enums"
)

func mintToken(t *testing.T, role enums.Role) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(config.JWTConfig{
		Secret:            "0123456789abcdef0123456789abcdef",
		Issuer:            "restodeals-test",
		ExpirationMinutes: 60,
	}, time.Now(), pkgauth.AccessTokenPayload{UserID: uuid.New(), Role: role})
	if err != nil {
		t.Fatalf("MintAccessToken() error = %v", err)
	}
	return token
}

func TestCredentialStoreCachesRoleOnSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := NewCredentialStore(path)
	if err != nil {
		t.Fatalf("NewCredentialStore() error = %v", err)
	}
	if store.SignedIn() {
		t.Fatal("fresh store must start signed out")
	}

	token := mintToken(t, enums.RoleOwner)
	if err := store.Set(token); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if store.Role() != enums.RoleOwner {
		t.Fatalf("role = %s, want owner", store.Role())
	}
	if store.Token() != token {
		t.Fatal("token must round-trip")
	}
}

func TestCredentialStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := NewCredentialStore(path)
	if err != nil {
		t.Fatalf("NewCredentialStore() error = %v", err)
	}
	token := mintToken(t, enums.RoleAdmin)
	if err := store.Set(token); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	reloaded, err := NewCredentialStore(path)
	if err != nil {
		t.Fatalf("NewCredentialStore() reload error = %v", err)
	}
	if reloaded.Token() != token {
		t.Fatal("token must survive a restart")
	}
	if reloaded.Role() != enums.RoleAdmin {
		t.Fatalf("role = %s, want cached admin", reloaded.Role())
	}
}

func TestCredentialStoreGarbageTokenMeansNoRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := NewCredentialStore(path)
	if err != nil {
		t.Fatalf("NewCredentialStore() error = %v", err)
	}

	if err := store.Set("not-a-jwt"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if store.Role() != enums.RoleNone {
		t.Fatalf("role = %s, want none for an unreadable token", store.Role())
	}
}

func TestCredentialStoreCorruptFileStartsSignedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	store, err := NewCredentialStore(path)
	if err != nil {
		t.Fatalf("NewCredentialStore() error = %v", err)
	}
	if store.SignedIn() {
		t.Fatal("corrupt file must read as signed out")
	}
}

func TestCredentialStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := NewCredentialStore(path)
	if err != nil {
		t.Fatalf("NewCredentialStore() error = %v", err)
	}
	if err := store.Set(mintToken(t, enums.RoleCustomer)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if store.SignedIn() || store.Role() != enums.RoleNone {
		t.Fatal("clear must forget token and role")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("clear must remove the file")
	}

	// Clearing again is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear() error = %v", err)
	}
}
