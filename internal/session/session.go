package session

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/ift-institute/ift-site/internal/localstore"
	"github.com/ift-institute/ift-site/internal/logging"
	"github.com/ift-institute/ift-site/internal/runtimeconfig"
	"github.com/ift-institute/ift-site/internal/validation"
	"github.com/ift-institute/ift-site/pkg/interfaces"
)

// Session is the single source of truth for the in-memory content map, the
// edit-mode flag and the permission flag, for the lifetime of one site
// process. The map is owned exclusively by the session and mutated only
// through LoadData and UpdateContent; readers receive values via GetContent.
type Session struct {
	mu        sync.RWMutex
	data      map[string]any
	isEditing bool
	canEdit   bool
	isLoading bool

	store         interfaces.ContentStore
	snapshot      interfaces.SnapshotStore
	authFlags     *localstore.AuthFlags
	authenticator interfaces.Authenticator

	policy     runtimeconfig.EmptyRemotePolicy
	privileged func(role string) bool
	logger     interfaces.Logger
	now        func() time.Time

	pending sync.WaitGroup
}

// Options wires the session's collaborators. Store may be nil, which is the
// "remote not configured" mode; Snapshot is always required as the write-side
// backup. Authenticator gates canEdit in remote mode; AuthFlags plus
// Privileged gate it in local mode.
type Options struct {
	Store         interfaces.ContentStore
	Snapshot      interfaces.SnapshotStore
	AuthFlags     *localstore.AuthFlags
	Authenticator interfaces.Authenticator
	Policy        runtimeconfig.EmptyRemotePolicy
	Privileged    func(role string) bool
	Logger        interfaces.Logger
	Now           func() time.Time
}

// New constructs a session in the Viewing state with an empty map. Call
// LoadData before serving.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	policy := opts.Policy
	if policy == "" {
		policy = runtimeconfig.EmptyRemoteAuthoritative
	}
	privileged := opts.Privileged
	if privileged == nil {
		privileged = func(string) bool { return false }
	}
	return &Session{
		data:          map[string]any{},
		isLoading:     true,
		store:         opts.Store,
		snapshot:      opts.Snapshot,
		authFlags:     opts.AuthFlags,
		authenticator: opts.Authenticator,
		policy:        policy,
		privileged:    privileged,
		logger:        logger,
		now:           now,
	}
}

// LoadData populates the map from the remote store when configured, falling
// back to the local snapshot on error or when no remote exists, and derives
// the permission flag. A successful remote read replaces the map entirely;
// an empty remote result follows the configured policy. Losing permission
// forces the session back to Viewing.
func (s *Session) LoadData(ctx context.Context) {
	var (
		data    map[string]any
		canEdit bool
	)

	if s.store != nil {
		rows, err := s.store.SelectAll(ctx)
		switch {
		case err != nil:
			s.logger.Error("failed to load content from remote store", "error", err)
			data = s.loadSnapshot()
		case len(rows) > 0:
			data = make(map[string]any, len(rows))
			for _, row := range rows {
				data[row.Key] = row.Value
			}
		default:
			if s.policy == runtimeconfig.EmptyRemoteMerge {
				data = s.loadSnapshot()
			} else {
				// Remote is authoritative: zero rows means no content.
				data = map[string]any{}
			}
		}
		canEdit = s.remoteCanEdit(ctx)
	} else {
		data = s.loadSnapshot()
		canEdit = s.localCanEdit()
	}

	s.mu.Lock()
	s.data = data
	s.canEdit = canEdit
	if !canEdit {
		s.isEditing = false
	}
	s.isLoading = false
	s.mu.Unlock()
}

func (s *Session) loadSnapshot() map[string]any {
	if s.snapshot == nil {
		return map[string]any{}
	}
	data, err := s.snapshot.Load()
	if err != nil {
		s.logger.Error("failed to load content snapshot", "error", err)
		return map[string]any{}
	}
	return data
}

func (s *Session) remoteCanEdit(ctx context.Context) bool {
	if s.authenticator == nil {
		return false
	}
	user, err := s.authenticator.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn("auth check failed, treating as no session", "error", err)
		return false
	}
	return user != nil
}

func (s *Session) localCanEdit() bool {
	if s.authFlags == nil {
		return false
	}
	ok, role, _ := s.authFlags.Get()
	return ok && s.privileged(role)
}

// BindAuthChanges re-runs LoadData whenever the authenticator announces a
// state change, so permissions and content stay in step with login/logout.
// The returned unsubscribe must be called on teardown.
func (s *Session) BindAuthChanges(ctx context.Context) (unsubscribe func()) {
	if s.authenticator == nil {
		return func() {}
	}
	return s.authenticator.OnAuthStateChange(func(interfaces.AuthEvent) {
		s.LoadData(ctx)
	})
}

// GetContent returns the stored value for key, or defaultContent when the
// key has no entry. Pure read; safe to call on every render.
func (s *Session) GetContent(key string, defaultContent any) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if value, ok := s.data[key]; ok {
		return value
	}
	return defaultContent
}

// GetContentValidated is GetContent with a shape check at the read boundary:
// a stored value that does not match the expected shape is logged and the
// default returned, so a malformed remote value can never break a page.
func (s *Session) GetContentValidated(key string, defaultContent any, shape *validation.Shape) any {
	s.mu.RLock()
	value, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return defaultContent
	}
	if err := shape.Check(value); err != nil {
		s.logger.Warn("stored content failed shape check, using default",
			"key", key, "issues", validation.IssuesOf(err))
		return defaultContent
	}
	return value
}

// UpdateContent commits the new value to the in-memory map synchronously,
// then persists asynchronously: remote upsert when configured, snapshot
// write otherwise, and snapshot write of the whole map when the remote
// upsert fails so the edit survives locally. Readers observe the new value
// as soon as this returns, regardless of persistence outcome.
func (s *Session) UpdateContent(ctx context.Context, key string, newContent any) {
	s.mu.Lock()
	s.data[key] = newContent
	committed := make(map[string]any, len(s.data))
	maps.Copy(committed, s.data)
	s.mu.Unlock()

	persistCtx := context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.persist(persistCtx, key, newContent, committed)
	}()
}

func (s *Session) persist(ctx context.Context, key string, value any, committed map[string]any) {
	if s.store != nil {
		err := s.store.UpsertByKey(ctx, key, value, s.now().UTC())
		if err == nil {
			return
		}
		s.logger.Error("failed to save content to remote store", "key", key, "error", err)
	}
	if s.snapshot == nil {
		return
	}
	if err := s.snapshot.Save(committed); err != nil {
		s.logger.Error("failed to save content snapshot", "error", err)
	}
}

// ToggleEditMode flips the edit-mode flag when the session may edit; a
// session without permission stays in Viewing.
func (s *Session) ToggleEditMode() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.canEdit {
		s.isEditing = !s.isEditing
	}
}

// IsEditing reports whether editing affordances should render.
func (s *Session) IsEditing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isEditing
}

// CanEdit reports whether this session may enter edit mode.
func (s *Session) CanEdit() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canEdit
}

// IsLoading reports whether the initial LoadData has completed.
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

// Data returns a copy of the current map, for the content API and the
// fallback writer.
func (s *Session) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, len(s.data))
	maps.Copy(out, s.data)
	return out
}

// Wait blocks until every pending persistence task has settled. Tests use
// it to observe the write side of the optimistic update.
func (s *Session) Wait() {
	s.pending.Wait()
}
