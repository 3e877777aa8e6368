package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/ift-institute/ift-site/pkg/interfaces"
)

// MemoryAuthenticator is a remote-provider stand-in for tests: registered
// accounts, an in-memory session, optional injected delays or failures.
type MemoryAuthenticator struct {
	mu          sync.Mutex
	accounts    map[string]string
	current     *interfaces.User
	broadcaster *Broadcaster

	currentErr error
	block      chan struct{}
}

var _ interfaces.Authenticator = (*MemoryAuthenticator)(nil)

// NewMemoryAuthenticator constructs an empty provider.
func NewMemoryAuthenticator() *MemoryAuthenticator {
	return &MemoryAuthenticator{
		accounts:    make(map[string]string),
		broadcaster: NewBroadcaster(),
	}
}

// Register adds an account accepted by SignIn.
func (a *MemoryAuthenticator) Register(email, password string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accounts[normalizeEmail(email)] = password
}

// SetCurrent forces the active session (nil signs out) without broadcasting.
func (a *MemoryAuthenticator) SetCurrent(user *interfaces.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = user
}

// FailCurrentUser makes CurrentUser return err until reset with nil.
func (a *MemoryAuthenticator) FailCurrentUser(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.currentErr = err
}

// Block makes every call wait on the returned channel until it is closed,
// simulating a hung provider.
func (a *MemoryAuthenticator) Block() chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.block = make(chan struct{})
	return a.block
}

func (a *MemoryAuthenticator) wait(ctx context.Context) error {
	a.mu.Lock()
	block := a.block
	a.mu.Unlock()
	if block == nil {
		return nil
	}
	select {
	case <-block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *MemoryAuthenticator) CurrentUser(ctx context.Context) (*interfaces.User, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.currentErr != nil {
		return nil, a.currentErr
	}
	return a.current, nil
}

func (a *MemoryAuthenticator) SignIn(ctx context.Context, email, password string) (*interfaces.User, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	a.mu.Lock()
	normalized := normalizeEmail(email)
	stored, ok := a.accounts[normalized]
	if !ok || stored != password || password == "" {
		a.mu.Unlock()
		return nil, ErrInvalidCredentials
	}
	user := &interfaces.User{ID: normalized, Email: normalized}
	a.current = user
	a.mu.Unlock()

	a.broadcaster.Publish(interfaces.AuthEvent{Kind: interfaces.AuthEventSignedIn, User: user})
	return user, nil
}

func (a *MemoryAuthenticator) SignUp(ctx context.Context, email, password string) (*interfaces.User, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	a.mu.Lock()
	normalized := normalizeEmail(email)
	a.accounts[normalized] = password
	a.mu.Unlock()
	return &interfaces.User{ID: normalized, Email: normalized}, nil
}

func (a *MemoryAuthenticator) SignOut(ctx context.Context) error {
	if err := a.wait(ctx); err != nil {
		return err
	}
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()

	a.broadcaster.Publish(interfaces.AuthEvent{Kind: interfaces.AuthEventSignedOut})
	return nil
}

func (a *MemoryAuthenticator) OnAuthStateChange(fn func(interfaces.AuthEvent)) func() {
	return a.broadcaster.Subscribe(fn)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
