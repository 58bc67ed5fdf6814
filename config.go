package hreflang

import (
	"github.com/goliatone/go-hreflang/internal/canonical"
	"github.com/goliatone/go-hreflang/internal/runtimeconfig"
)

var (
	ErrSiteURLRequired           = runtimeconfig.ErrSiteURLRequired
	ErrSiteURLInvalid            = runtimeconfig.ErrSiteURLInvalid
	ErrCanonicalConfigInvalid    = runtimeconfig.ErrCanonicalConfigInvalid
	ErrInjectorOutputDirRequired = runtimeconfig.ErrInjectorOutputDirRequired
	ErrInjectorWorkersInvalid    = runtimeconfig.ErrInjectorWorkersInvalid
	ErrLoggingProviderRequired   = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown    = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
	ErrSiteFileInvalid           = runtimeconfig.ErrSiteFileInvalid
)

type (
	Config         = runtimeconfig.Config
	SourcesConfig  = runtimeconfig.SourcesConfig
	InjectorConfig = runtimeconfig.InjectorConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	SiteFile       = runtimeconfig.SiteFile

	Settings  = canonical.Settings
	Overlay   = canonical.Overlay
	Page      = canonical.Page
	Alternate = canonical.Alternate
	TagSet    = canonical.TagSet
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadSiteFile reads the url and canonical_multilang keys of a site config file.
func LoadSiteFile(path string) (SiteFile, error) {
	return runtimeconfig.LoadSiteFile(path)
}
