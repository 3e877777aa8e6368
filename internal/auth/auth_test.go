package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ift-institute/ift-site/internal/localstore"
	"github.com/ift-institute/ift-site/pkg/interfaces"
)

func newLocal(t *testing.T) (*LocalAuthenticator, *Broadcaster) {
	t.Helper()
	flags := localstore.NewAuthFlags(filepath.Join(t.TempDir(), "auth.json"))
	bus := NewBroadcaster()
	return NewLocalAuthenticator(flags, bus, "reid@ift.edu", nil), bus
}

func TestLocalAuthenticator_SignInLifecycle(t *testing.T) {
	local, _ := newLocal(t)
	ctx := context.Background()

	if user, err := local.CurrentUser(ctx); err != nil || user != nil {
		t.Fatalf("CurrentUser() = %v, %v before sign-in", user, err)
	}

	var events []interfaces.AuthEvent
	unsubscribe := local.OnAuthStateChange(func(e interfaces.AuthEvent) {
		events = append(events, e)
	})
	defer unsubscribe()

	user, err := local.SignIn(ctx, "  Reid@IFT.edu ", "hunter2")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if user.Email != "reid@ift.edu" || user.Role != "admin" {
		t.Fatalf("SignIn() user = %+v", user)
	}

	current, err := local.CurrentUser(ctx)
	if err != nil || current == nil || current.Role != "admin" {
		t.Fatalf("CurrentUser() = %v, %v after sign-in", current, err)
	}

	if err := local.SignOut(ctx); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if current, _ := local.CurrentUser(ctx); current != nil {
		t.Fatalf("CurrentUser() = %+v after sign-out", current)
	}

	if len(events) != 2 || events[0].Kind != interfaces.AuthEventSignedIn || events[1].Kind != interfaces.AuthEventSignedOut {
		t.Fatalf("events = %+v", events)
	}
}

func TestLocalAuthenticator_RejectsUnknownEmailAndEmptyPassword(t *testing.T) {
	local, _ := newLocal(t)
	ctx := context.Background()

	if _, err := local.SignIn(ctx, "intruder@ift.edu", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("SignIn() unknown email = %v", err)
	}
	if _, err := local.SignIn(ctx, "reid@ift.edu", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("SignIn() empty password = %v", err)
	}
	if _, err := local.SignUp(ctx, "new@ift.edu", "pw"); !errors.Is(err, ErrSignUpUnsupported) {
		t.Fatalf("SignUp() = %v", err)
	}
}

func TestBroadcaster_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBroadcaster()

	count := 0
	unsubscribe := bus.Subscribe(func(interfaces.AuthEvent) { count++ })

	bus.Publish(interfaces.AuthEvent{Kind: interfaces.AuthEventSignedIn})
	unsubscribe()
	unsubscribe() // idempotent
	bus.Publish(interfaces.AuthEvent{Kind: interfaces.AuthEventSignedOut})

	if count != 1 {
		t.Fatalf("callback ran %d times, want 1", count)
	}
}

func TestWithTimeout_HungProviderReadsAsNoSession(t *testing.T) {
	remote := NewMemoryAuthenticator()
	release := remote.Block()
	defer close(release)

	timed := WithTimeout(remote, 20*time.Millisecond)

	if _, err := timed.CurrentUser(context.Background()); !errors.Is(err, ErrTimeout) {
		t.Fatalf("CurrentUser() = %v, want ErrTimeout", err)
	}
	if _, err := timed.SignIn(context.Background(), "a@b.c", "pw"); !errors.Is(err, ErrTimeout) {
		t.Fatalf("SignIn() = %v, want ErrTimeout", err)
	}
}

func TestWithTimeout_PassThroughWhenProviderAnswers(t *testing.T) {
	remote := NewMemoryAuthenticator()
	remote.Register("editor@ift.edu", "pw")

	timed := WithTimeout(remote, time.Second)

	user, err := timed.SignIn(context.Background(), "editor@ift.edu", "pw")
	if err != nil || user == nil {
		t.Fatalf("SignIn() = %v, %v", user, err)
	}

	current, err := timed.CurrentUser(context.Background())
	if err != nil || current == nil || current.Email != "editor@ift.edu" {
		t.Fatalf("CurrentUser() = %v, %v", current, err)
	}
}
