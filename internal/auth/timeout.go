package auth

import (
	"context"
	"time"

	"github.com/ift-institute/ift-site/pkg/interfaces"
)

// timeoutAuthenticator bounds the session check and credential exchange so a
// hung provider never leaves the UI in an indefinite loading state. An
// expired timer reads as "no session" for lookups and a retryable failure
// for sign-in.
type timeoutAuthenticator struct {
	inner   interfaces.Authenticator
	timeout time.Duration
}

// WithTimeout wraps auth so CurrentUser, SignIn and SignUp race against d.
func WithTimeout(inner interfaces.Authenticator, d time.Duration) interfaces.Authenticator {
	if d <= 0 {
		return inner
	}
	return &timeoutAuthenticator{inner: inner, timeout: d}
}

type userResult struct {
	user *interfaces.User
	err  error
}

func (a *timeoutAuthenticator) race(ctx context.Context, call func(context.Context) (*interfaces.User, error)) (*interfaces.User, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	done := make(chan userResult, 1)
	go func() {
		user, err := call(ctx)
		done <- userResult{user: user, err: err}
	}()

	select {
	case res := <-done:
		return res.user, res.err
	case <-ctx.Done():
		return nil, ErrTimeout
	}
}

func (a *timeoutAuthenticator) CurrentUser(ctx context.Context) (*interfaces.User, error) {
	return a.race(ctx, a.inner.CurrentUser)
}

func (a *timeoutAuthenticator) SignIn(ctx context.Context, email, password string) (*interfaces.User, error) {
	return a.race(ctx, func(ctx context.Context) (*interfaces.User, error) {
		return a.inner.SignIn(ctx, email, password)
	})
}

func (a *timeoutAuthenticator) SignUp(ctx context.Context, email, password string) (*interfaces.User, error) {
	return a.race(ctx, func(ctx context.Context) (*interfaces.User, error) {
		return a.inner.SignUp(ctx, email, password)
	})
}

func (a *timeoutAuthenticator) SignOut(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- a.inner.SignOut(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ErrTimeout
	}
}

func (a *timeoutAuthenticator) OnAuthStateChange(fn func(interfaces.AuthEvent)) func() {
	return a.inner.OnAuthStateChange(fn)
}
