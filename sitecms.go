// Package sitecms assembles the IFT marketing site: a fixed page catalog
// whose copy, media and collections are overridable through an in-page CMS
// layer backed by a remote content table with a local snapshot fallback.
package sitecms

import (
	"context"
	"net/http"

	"github.com/ift-institute/ift-site/internal/auth"
	"github.com/ift-institute/ift-site/internal/contentstore"
	"github.com/ift-institute/ift-site/internal/httpapi"
	"github.com/ift-institute/ift-site/internal/localstore"
	"github.com/ift-institute/ift-site/internal/logging"
	"github.com/ift-institute/ift-site/internal/logging/gologger"
	"github.com/ift-institute/ift-site/internal/session"
	"github.com/ift-institute/ift-site/internal/site"
	"github.com/ift-institute/ift-site/pkg/interfaces"
)

// Session exports the content session contract for consumers of the package.
type Session = session.Session

// Catalog exports the page catalog.
type Catalog = site.Catalog

// Module is the top level runtime: configuration resolved, collaborators
// wired, routes mounted.
type Module struct {
	cfg           Config
	session       *session.Session
	store         *contentstore.BunStore
	authenticator interfaces.Authenticator
	catalog       *site.Catalog
	server        *httpapi.Server
	provider      interfaces.LoggerProvider
	unsubscribe   func()
}

// Option overrides a wired collaborator.
type Option func(*Module)

// WithAuthenticator supplies an external auth provider. Required for
// AuthModeRemote; ignored defaults otherwise replaced.
func WithAuthenticator(a interfaces.Authenticator) Option {
	return func(m *Module) { m.authenticator = a }
}

// WithLoggerProvider replaces the configured logging backend.
func WithLoggerProvider(p interfaces.LoggerProvider) Option {
	return func(m *Module) { m.provider = p }
}

// New constructs the module from configuration. Call Load before serving.
func New(ctx context.Context, cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil {
		switch cfg.Logging.Provider {
		case "", "gologger":
			provider, err := gologger.NewProvider(gologger.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			if err != nil {
				return nil, err
			}
			m.provider = provider
		}
	}

	snapshot := localstore.NewSnapshot(cfg.Fallback.SnapshotPath, logging.StoreLogger(m.provider))
	flags := localstore.NewAuthFlags(cfg.Fallback.AuthPath)

	if cfg.Store.Enabled {
		store, err := contentstore.OpenSQLite(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		m.store = store
	}

	if m.authenticator == nil && cfg.Auth.Mode != AuthModeRemote {
		m.authenticator = auth.NewLocalAuthenticator(
			flags, nil, cfg.Auth.AdminEmail, logging.AuthLogger(m.provider))
	}
	if m.authenticator != nil {
		m.authenticator = auth.WithTimeout(m.authenticator, cfg.Auth.Timeout)
	}

	sessionOpts := session.Options{
		Snapshot:      snapshot,
		AuthFlags:     flags,
		Authenticator: m.authenticator,
		Policy:        cfg.Content.EmptyRemotePolicy,
		Privileged:    cfg.PrivilegedRole,
		Logger:        logging.SessionLogger(m.provider),
	}
	if m.store != nil {
		sessionOpts.Store = m.store
	}
	m.session = session.New(sessionOpts)

	catalog, err := site.NewCatalog()
	if err != nil {
		return nil, err
	}
	m.catalog = catalog

	serverOpts := []httpapi.Option{
		httpapi.WithLogger(logging.HTTPLogger(m.provider)),
		httpapi.WithSiteTitle(cfg.Site.Title),
		httpapi.WithMaxUpload(cfg.Site.MaxUploadBytes),
		httpapi.WithShapeChecks(cfg.Content.ValidateOnRead),
	}
	if cfg.HTTP.BasePath != "" {
		serverOpts = append(serverOpts, httpapi.WithBasePath(cfg.HTTP.BasePath))
	}
	if m.authenticator != nil {
		serverOpts = append(serverOpts, httpapi.WithAuthenticator(m.authenticator))
	}
	m.server = httpapi.New(m.session, catalog, serverOpts...)

	return m, nil
}

// Load performs the initial content read and subscribes the session to auth
// state changes.
func (m *Module) Load(ctx context.Context) {
	m.session.LoadData(ctx)
	m.unsubscribe = m.session.BindAuthChanges(ctx)
}

// Session returns the content session.
func (m *Module) Session() *Session {
	return m.session
}

// Pages returns the page catalog.
func (m *Module) Pages() *Catalog {
	return m.catalog
}

// Store returns the remote content store, nil when not configured.
func (m *Module) Store() interfaces.ContentStore {
	if m.store == nil {
		return nil
	}
	return m.store
}

// Authenticator returns the wired auth collaborator, nil in no-auth setups.
func (m *Module) Authenticator() interfaces.Authenticator {
	return m.authenticator
}

// Handler returns the HTTP surface.
func (m *Module) Handler() http.Handler {
	return m.server
}

// Addr reports the configured listen address.
func (m *Module) Addr() string {
	return m.cfg.HTTP.Addr
}

// Close drains pending content writes and releases held resources.
func (m *Module) Close() error {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.session.Wait()
	if m.store != nil {
		if db := m.store.DB(); db != nil {
			return db.Close()
		}
	}
	return nil
}
