package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
)

// AuthFlags is the local persistence slot for the no-remote login state:
// one authenticated flag plus the signed-in role, the same two values the
// site kept under ift_auth / ift_role.
type AuthFlags struct {
	mu   sync.Mutex
	path string
}

type authFlagsDoc struct {
	Authenticated bool   `json:"ift_auth"`
	Role          string `json:"ift_role,omitempty"`
	Email         string `json:"email,omitempty"`
}

// NewAuthFlags constructs the flag store at path.
func NewAuthFlags(path string) *AuthFlags {
	return &AuthFlags{path: path}
}

// Get returns the stored flag, role and email. Missing or corrupt state
// reads as signed out.
func (a *AuthFlags) Get() (authenticated bool, role, email string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	raw, err := os.ReadFile(a.path)
	if err != nil {
		return false, "", ""
	}
	var doc authFlagsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, "", ""
	}
	return doc.Authenticated, strings.TrimSpace(doc.Role), strings.TrimSpace(doc.Email)
}

// Set persists a signed-in state with the given role.
func (a *AuthFlags) Set(role, email string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	encoded, err := json.Marshal(authFlagsDoc{
		Authenticated: true,
		Role:          strings.TrimSpace(role),
		Email:         strings.TrimSpace(email),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(a.path, encoded, 0o600)
}

// Clear removes the signed-in state.
func (a *AuthFlags) Clear() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.Remove(a.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
