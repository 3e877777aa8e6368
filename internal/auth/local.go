package auth

import (
	"context"
	"strings"

	"github.com/ift-institute/ift-site/internal/localstore"
	"github.com/ift-institute/ift-site/internal/logging"
	"github.com/ift-institute/ift-site/pkg/interfaces"
)

// LocalAuthenticator is the no-remote authentication mode: one configured
// admin account, session state persisted as local flags, transitions
// announced on the shared broadcaster.
type LocalAuthenticator struct {
	flags       *localstore.AuthFlags
	broadcaster *Broadcaster
	adminEmail  string
	logger      interfaces.Logger
}

var _ interfaces.Authenticator = (*LocalAuthenticator)(nil)

// NewLocalAuthenticator constructs the local provider. adminEmail is the only
// accepted account; it signs in with the admin role.
func NewLocalAuthenticator(flags *localstore.AuthFlags, broadcaster *Broadcaster, adminEmail string, logger interfaces.Logger) *LocalAuthenticator {
	if broadcaster == nil {
		broadcaster = NewBroadcaster()
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &LocalAuthenticator{
		flags:       flags,
		broadcaster: broadcaster,
		adminEmail:  strings.ToLower(strings.TrimSpace(adminEmail)),
		logger:      logger,
	}
}

// CurrentUser reads the persisted flags. No flags means no session, not an
// error.
func (a *LocalAuthenticator) CurrentUser(context.Context) (*interfaces.User, error) {
	ok, role, email := a.flags.Get()
	if !ok {
		return nil, nil
	}
	return &interfaces.User{ID: email, Email: email, Role: role}, nil
}

// SignIn accepts the configured admin email with any non-empty password,
// persists the flags and broadcasts the transition.
func (a *LocalAuthenticator) SignIn(_ context.Context, email, password string) (*interfaces.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	role := ""
	if a.adminEmail != "" && normalized == a.adminEmail {
		role = "admin"
	}
	if role == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if err := a.flags.Set(role, normalized); err != nil {
		a.logger.Error("failed to persist auth flags", "error", err)
		return nil, err
	}

	user := &interfaces.User{ID: normalized, Email: normalized, Role: role}
	a.broadcaster.Publish(interfaces.AuthEvent{Kind: interfaces.AuthEventSignedIn, User: user})
	return user, nil
}

// SignUp is not available without a remote provider.
func (a *LocalAuthenticator) SignUp(context.Context, string, string) (*interfaces.User, error) {
	return nil, ErrSignUpUnsupported
}

// SignOut clears the flags and broadcasts the transition.
func (a *LocalAuthenticator) SignOut(context.Context) error {
	if err := a.flags.Clear(); err != nil {
		return err
	}
	a.broadcaster.Publish(interfaces.AuthEvent{Kind: interfaces.AuthEventSignedOut})
	return nil
}

// OnAuthStateChange subscribes to the shared broadcaster.
func (a *LocalAuthenticator) OnAuthStateChange(fn func(interfaces.AuthEvent)) func() {
	return a.broadcaster.Subscribe(fn)
}
