package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ift-institute/ift-site/internal/contentstore"
	"github.com/ift-institute/ift-site/internal/localstore"
	"github.com/ift-institute/ift-site/internal/runtimeconfig"
	"github.com/ift-institute/ift-site/internal/validation"
	"github.com/ift-institute/ift-site/pkg/interfaces"
)

func privilegedRoles(role string) bool {
	switch role {
	case "director", "admin", "staff":
		return true
	}
	return false
}

type fixture struct {
	session  *Session
	store    *contentstore.MemoryStore
	snapshot *localstore.Snapshot
	flags    *localstore.AuthFlags
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	dir := t.TempDir()

	f := &fixture{
		snapshot: localstore.NewSnapshot(filepath.Join(dir, "cms.json"), nil),
		flags:    localstore.NewAuthFlags(filepath.Join(dir, "auth.json")),
	}
	opts.Snapshot = f.snapshot
	opts.AuthFlags = f.flags
	if opts.Privileged == nil {
		opts.Privileged = privilegedRoles
	}
	f.session = New(opts)
	return f
}

func TestGetContent_DefaultFallbackLaw(t *testing.T) {
	f := newFixture(t, Options{})
	f.session.LoadData(context.Background())

	if got := f.session.GetContent("hero-title", "Default Title"); got != "Default Title" {
		t.Fatalf("GetContent() = %v", got)
	}
	if got := f.session.GetContent("missing", 42); got != 42 {
		t.Fatalf("GetContent() = %v", got)
	}
}

func TestUpdateContent_OptimisticReadLaw(t *testing.T) {
	store := contentstore.NewMemoryStore()
	store.FailUpsert(errors.New("remote down"))
	f := newFixture(t, Options{Store: store})
	f.session.LoadData(context.Background())

	f.session.UpdateContent(context.Background(), "hero-title", "New Title")

	// Visible immediately, before persistence settles.
	if got := f.session.GetContent("hero-title", "x"); got != "New Title" {
		t.Fatalf("GetContent() = %v before persistence", got)
	}

	f.session.Wait()
	if got := f.session.GetContent("hero-title", "x"); got != "New Title" {
		t.Fatalf("GetContent() = %v after failed remote write", got)
	}

	// Failed remote write landed in the snapshot instead.
	saved, err := f.snapshot.Load()
	if err != nil {
		t.Fatal(err)
	}
	if saved["hero-title"] != "New Title" {
		t.Fatalf("snapshot = %v", saved)
	}
}

func TestUpdateContent_RemoteSuccessSkipsSnapshot(t *testing.T) {
	store := contentstore.NewMemoryStore()
	f := newFixture(t, Options{Store: store})
	f.session.LoadData(context.Background())

	f.session.UpdateContent(context.Background(), "hero-title", "Stored Remotely")
	f.session.Wait()

	row, ok := store.Get("hero-title")
	if !ok || row.Value != "Stored Remotely" {
		t.Fatalf("store row = %+v, %v", row, ok)
	}
	saved, _ := f.snapshot.Load()
	if len(saved) != 0 {
		t.Fatalf("snapshot written on remote success: %v", saved)
	}
}

func TestUpdateContent_NoRemoteWritesSnapshot(t *testing.T) {
	f := newFixture(t, Options{})
	f.session.LoadData(context.Background())

	f.session.UpdateContent(context.Background(), "about-intro", "Local only")
	f.session.Wait()

	saved, _ := f.snapshot.Load()
	if saved["about-intro"] != "Local only" {
		t.Fatalf("snapshot = %v", saved)
	}
}

func TestUpdateContent_IdempotentAndLastWriteWins(t *testing.T) {
	f := newFixture(t, Options{})
	f.session.LoadData(context.Background())
	ctx := context.Background()

	f.session.UpdateContent(ctx, "hero-title", "A")
	f.session.UpdateContent(ctx, "hero-title", "A")
	if got := f.session.GetContent("hero-title", "x"); got != "A" {
		t.Fatalf("GetContent() = %v after repeated update", got)
	}

	f.session.UpdateContent(ctx, "hero-title", "B")
	if got := f.session.GetContent("hero-title", "x"); got != "B" {
		t.Fatalf("GetContent() = %v, want last write", got)
	}
	f.session.Wait()
}

func TestLoadData_RemoteRowsReplaceMapEntirely(t *testing.T) {
	store := contentstore.NewMemoryStore()
	store.UpsertByKey(context.Background(), "hero-title", "Remote Title", time.Now())
	f := newFixture(t, Options{Store: store})

	// Pre-seed memory state that the reload must not merge with.
	f.session.LoadData(context.Background())
	f.session.UpdateContent(context.Background(), "stale-key", "stale")
	f.session.Wait()

	f.session.LoadData(context.Background())
	if got := f.session.GetContent("hero-title", "x"); got != "Remote Title" {
		t.Fatalf("GetContent() = %v", got)
	}
}

func TestLoadData_RemoteErrorFallsBackToSnapshotAndDeniesEdit(t *testing.T) {
	f := newFixture(t, Options{})
	if err := f.snapshot.Save(map[string]any{"hero-title": "Cached Title"}); err != nil {
		t.Fatal(err)
	}

	store := contentstore.NewMemoryStore()
	store.FailSelect(errors.New("remote unreachable"))
	f.session.store = store

	f.session.LoadData(context.Background())

	if got := f.session.GetContent("hero-title", "x"); got != "Cached Title" {
		t.Fatalf("GetContent() = %v, want cached snapshot", got)
	}
	if f.session.CanEdit() {
		t.Fatal("CanEdit() = true with unreachable remote and no user")
	}
}

func TestLoadData_EmptyRemotePolicies(t *testing.T) {
	background := context.Background()

	t.Run("authoritative replace drops cached values", func(t *testing.T) {
		f := newFixture(t, Options{
			Store:  contentstore.NewMemoryStore(),
			Policy: runtimeconfig.EmptyRemoteAuthoritative,
		})
		f.snapshot.Save(map[string]any{"hero-title": "Cached"})

		f.session.LoadData(background)
		if got := f.session.GetContent("hero-title", "default"); got != "default" {
			t.Fatalf("GetContent() = %v, want default", got)
		}
	})

	t.Run("merge keeps snapshot on empty remote", func(t *testing.T) {
		f := newFixture(t, Options{
			Store:  contentstore.NewMemoryStore(),
			Policy: runtimeconfig.EmptyRemoteMerge,
		})
		f.snapshot.Save(map[string]any{"hero-title": "Cached"})

		f.session.LoadData(background)
		if got := f.session.GetContent("hero-title", "default"); got != "Cached" {
			t.Fatalf("GetContent() = %v, want Cached", got)
		}
	})
}

func TestLocalAuthFlags_GateEditMode(t *testing.T) {
	f := newFixture(t, Options{})
	if err := f.flags.Set("admin", "reid@ift.edu"); err != nil {
		t.Fatal(err)
	}

	f.session.LoadData(context.Background())

	if !f.session.CanEdit() {
		t.Fatal("CanEdit() = false with admin flags")
	}
	f.session.ToggleEditMode()
	if !f.session.IsEditing() {
		t.Fatal("ToggleEditMode() did not enter Editing")
	}
	f.session.ToggleEditMode()
	if f.session.IsEditing() {
		t.Fatal("ToggleEditMode() did not return to Viewing")
	}
}

func TestUnprivilegedRoleCannotEdit(t *testing.T) {
	f := newFixture(t, Options{})
	if err := f.flags.Set("student", "s@ift.edu"); err != nil {
		t.Fatal(err)
	}

	f.session.LoadData(context.Background())

	if f.session.CanEdit() {
		t.Fatal("CanEdit() = true for student role")
	}
	f.session.ToggleEditMode()
	if f.session.IsEditing() {
		t.Fatal("ToggleEditMode() flipped without permission")
	}
}

func TestPermissionDowngradeForcesViewing(t *testing.T) {
	f := newFixture(t, Options{})
	f.flags.Set("staff", "s@ift.edu")
	f.session.LoadData(context.Background())
	f.session.ToggleEditMode()
	if !f.session.IsEditing() {
		t.Fatal("setup: expected Editing")
	}

	// Sign-out clears the flags; the reload must force Viewing.
	f.flags.Clear()
	f.session.LoadData(context.Background())

	if f.session.CanEdit() || f.session.IsEditing() {
		t.Fatalf("CanEdit()=%v IsEditing()=%v after downgrade",
			f.session.CanEdit(), f.session.IsEditing())
	}
}

type staticAuth struct {
	user *interfaces.User
	err  error
}

func (a staticAuth) CurrentUser(context.Context) (*interfaces.User, error) { return a.user, a.err }
func (a staticAuth) SignIn(context.Context, string, string) (*interfaces.User, error) {
	return a.user, a.err
}
func (a staticAuth) SignUp(context.Context, string, string) (*interfaces.User, error) {
	return a.user, a.err
}
func (a staticAuth) SignOut(context.Context) error                   { return nil }
func (a staticAuth) OnAuthStateChange(func(interfaces.AuthEvent)) func() { return func() {} }

func TestRemoteUserGrantsEdit(t *testing.T) {
	f := newFixture(t, Options{
		Store:         contentstore.NewMemoryStore(),
		Authenticator: staticAuth{user: &interfaces.User{ID: "u1", Email: "e@ift.edu"}},
	})
	f.session.LoadData(context.Background())

	if !f.session.CanEdit() {
		t.Fatal("CanEdit() = false with remote user")
	}
}

func TestRemoteAuthErrorDeniesEdit(t *testing.T) {
	f := newFixture(t, Options{
		Store:         contentstore.NewMemoryStore(),
		Authenticator: staticAuth{err: errors.New("auth timeout")},
	})
	f.session.LoadData(context.Background())

	if f.session.CanEdit() {
		t.Fatal("CanEdit() = true despite auth error")
	}
}

func TestGetContentValidated_FallsBackOnShapeMismatch(t *testing.T) {
	f := newFixture(t, Options{})
	f.session.LoadData(context.Background())
	ctx := context.Background()

	// A scalar stored where a collection is expected.
	f.session.UpdateContent(ctx, "events-talks", "not a list")
	f.session.Wait()

	defaults := []any{map[string]any{"id": "seed", "title": "Opening Talk"}}
	got := f.session.GetContentValidated("events-talks", defaults, validation.ItemListShape())
	list, ok := got.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("GetContentValidated() = %v, want defaults", got)
	}

	// A well-shaped value passes through.
	stored := []any{map[string]any{"id": "a", "title": "Stored Talk"}}
	f.session.UpdateContent(ctx, "events-talks", stored)
	f.session.Wait()
	got = f.session.GetContentValidated("events-talks", defaults, validation.ItemListShape())
	list, ok = got.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("GetContentValidated() = %v", got)
	}
	if item, _ := list[0].(map[string]any); item["title"] != "Stored Talk" {
		t.Fatalf("GetContentValidated() item = %v", list[0])
	}
}
