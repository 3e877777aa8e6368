package interfaces

import "context"

// User identifies an authenticated editor session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// AuthEventKind labels auth-state transitions delivered to subscribers.
type AuthEventKind string

const (
	AuthEventSignedIn  AuthEventKind = "signed_in"
	AuthEventSignedOut AuthEventKind = "signed_out"
)

// AuthEvent notifies subscribers that the ambient session changed.
type AuthEvent struct {
	Kind AuthEventKind
	User *User
}

// Authenticator is the external authentication collaborator. CurrentUser
// returns (nil, nil) when no session exists; failures to reach the provider
// surface as errors.
type Authenticator interface {
	CurrentUser(ctx context.Context) (*User, error)
	SignIn(ctx context.Context, email, password string) (*User, error)
	SignUp(ctx context.Context, email, password string) (*User, error)
	SignOut(ctx context.Context) error

	// OnAuthStateChange registers a callback invoked on every auth-state
	// transition. The returned function unsubscribes the callback and must
	// be called on teardown.
	OnAuthStateChange(fn func(AuthEvent)) (unsubscribe func())
}
