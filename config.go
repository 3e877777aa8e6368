package sitecms

import "github.com/ift-institute/ift-site/internal/runtimeconfig"

var (
	ErrStoreDSNRequired         = runtimeconfig.ErrStoreDSNRequired
	ErrStoreDriverUnknown       = runtimeconfig.ErrStoreDriverUnknown
	ErrFallbackPathRequired     = runtimeconfig.ErrFallbackPathRequired
	ErrAuthModeUnknown          = runtimeconfig.ErrAuthModeUnknown
	ErrAuthTimeoutInvalid       = runtimeconfig.ErrAuthTimeoutInvalid
	ErrEmptyRemotePolicyUnknown = runtimeconfig.ErrEmptyRemotePolicyUnknown
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrUploadLimitInvalid       = runtimeconfig.ErrUploadLimitInvalid
)

type (
	Config            = runtimeconfig.Config
	ContentConfig     = runtimeconfig.ContentConfig
	StoreConfig       = runtimeconfig.StoreConfig
	FallbackConfig    = runtimeconfig.FallbackConfig
	AuthConfig        = runtimeconfig.AuthConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
	HTTPConfig        = runtimeconfig.HTTPConfig
	SiteConfig        = runtimeconfig.SiteConfig
	AuthMode          = runtimeconfig.AuthMode
	EmptyRemotePolicy = runtimeconfig.EmptyRemotePolicy
)

const (
	AuthModeLocal  = runtimeconfig.AuthModeLocal
	AuthModeRemote = runtimeconfig.AuthModeRemote

	EmptyRemoteAuthoritative = runtimeconfig.EmptyRemoteAuthoritative
	EmptyRemoteMerge         = runtimeconfig.EmptyRemoteMerge
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
