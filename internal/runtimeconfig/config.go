package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

// ErrStoreDSNRequired indicates a remote store was enabled without a DSN.
var ErrStoreDSNRequired = errors.New("site config: store DSN is required when the remote store is enabled")

// ErrStoreDriverUnknown rejects drivers the store layer cannot open.
var ErrStoreDriverUnknown = errors.New("site config: store driver is invalid")

// ErrFallbackPathRequired ensures the degraded mode always has a snapshot slot.
var ErrFallbackPathRequired = errors.New("site config: fallback snapshot path is required")

var ErrAuthModeUnknown = errors.New("site config: auth mode is invalid")
var ErrAuthTimeoutInvalid = errors.New("site config: auth timeout must be positive")
var ErrEmptyRemotePolicyUnknown = errors.New("site config: empty-remote policy is invalid")
var ErrLoggingProviderUnknown = errors.New("site config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("site config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("site config: logging format is invalid")
var ErrUploadLimitInvalid = errors.New("site config: upload limit must be positive")

// EmptyRemotePolicy decides what happens when a configured remote store
// returns zero rows on load. The original site treated the remote as
// authoritative and dropped any cached local values; merge keeps the local
// snapshot when the remote comes back empty.
type EmptyRemotePolicy string

const (
	EmptyRemoteAuthoritative EmptyRemotePolicy = "authoritative"
	EmptyRemoteMerge         EmptyRemotePolicy = "merge"
)

// AuthMode selects the authentication collaborator.
type AuthMode string

const (
	// AuthModeLocal derives permission from the local auth flags and the
	// privileged role list.
	AuthModeLocal AuthMode = "local"
	// AuthModeRemote treats any authenticated user of the remote provider
	// as an editor.
	AuthModeRemote AuthMode = "remote"
)

// Config aggregates the runtime options for the site module.
type Config struct {
	Content  ContentConfig
	Store    StoreConfig
	Fallback FallbackConfig
	Auth     AuthConfig
	Logging  LoggingConfig
	HTTP     HTTPConfig
	Site     SiteConfig
}

// ContentConfig tunes the in-memory content session.
type ContentConfig struct {
	// EmptyRemotePolicy applies when the remote store answers with zero rows.
	EmptyRemotePolicy EmptyRemotePolicy
	// ValidateOnRead enables JSON-schema shape checks at the read boundary;
	// mismatched values fall back to the caller default.
	ValidateOnRead bool
}

// StoreConfig describes the remote content table.
type StoreConfig struct {
	Enabled bool
	Driver  string
	DSN     string
}

// FallbackConfig locates the local persistence slots used in degraded mode.
type FallbackConfig struct {
	// SnapshotPath holds the serialized content map.
	SnapshotPath string
	// AuthPath holds the local auth flag and role.
	AuthPath string
}

// AuthConfig wires the authentication collaborator.
type AuthConfig struct {
	Mode AuthMode
	// Timeout bounds the current-user check and the sign-in exchange; an
	// expired timer is treated as "no session" / "authentication failed".
	Timeout time.Duration
	// PrivilegedRoles may toggle edit mode in local mode.
	PrivilegedRoles []string
	// AdminEmail is the single account the local authenticator accepts.
	AdminEmail string
}

// LoggingConfig selects the structured logging provider.
type LoggingConfig struct {
	Provider string
	Level    string
	Format   string
}

// HTTPConfig describes the serving surface.
type HTTPConfig struct {
	Addr     string
	BasePath string
}

// SiteConfig carries page-level knobs.
type SiteConfig struct {
	Title string
	// MaxUploadBytes caps image and video uploads.
	MaxUploadBytes int64
}

// DefaultConfig returns the canonical development configuration: no remote
// store, file snapshot fallback, local auth with the three privileged roles.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			EmptyRemotePolicy: EmptyRemoteAuthoritative,
			ValidateOnRead:    true,
		},
		Store: StoreConfig{
			Enabled: false,
			Driver:  "sqlite",
			DSN:     "file:cms_content.db?cache=shared",
		},
		Fallback: FallbackConfig{
			SnapshotPath: "ift_cms_data.json",
			AuthPath:     "ift_auth.json",
		},
		Auth: AuthConfig{
			Mode:            AuthModeLocal,
			Timeout:         5 * time.Second,
			PrivilegedRoles: []string{"director", "admin", "staff"},
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Site: SiteConfig{
			Title:          "Institute for Future Technologies",
			MaxUploadBytes: 16 << 20,
		},
	}
}

// Validate reports the first configuration inconsistency found.
func (cfg Config) Validate() error {
	if cfg.Store.Enabled {
		if strings.TrimSpace(cfg.Store.DSN) == "" {
			return ErrStoreDSNRequired
		}
		switch strings.ToLower(strings.TrimSpace(cfg.Store.Driver)) {
		case "sqlite", "sqlite3":
		default:
			return ErrStoreDriverUnknown
		}
	}

	if strings.TrimSpace(cfg.Fallback.SnapshotPath) == "" {
		return ErrFallbackPathRequired
	}

	switch cfg.Auth.Mode {
	case AuthModeLocal, AuthModeRemote, "":
	default:
		return ErrAuthModeUnknown
	}
	if cfg.Auth.Timeout <= 0 {
		return ErrAuthTimeoutInvalid
	}

	switch cfg.Content.EmptyRemotePolicy {
	case EmptyRemoteAuthoritative, EmptyRemoteMerge, "":
	default:
		return ErrEmptyRemotePolicyUnknown
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "", "gologger", "noop":
	default:
		return ErrLoggingProviderUnknown
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}

	if cfg.Site.MaxUploadBytes <= 0 {
		return ErrUploadLimitInvalid
	}

	return nil
}

// PrivilegedRole reports whether role belongs to the configured editor set.
func (cfg Config) PrivilegedRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return false
	}
	for _, allowed := range cfg.Auth.PrivilegedRoles {
		if strings.EqualFold(strings.TrimSpace(allowed), role) {
			return true
		}
	}
	return false
}
