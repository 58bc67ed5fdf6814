package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-hreflang/internal/canonical"
)

var ErrSiteURLRequired = errors.New("hreflang config: site url is required")
var ErrSiteURLInvalid = errors.New("hreflang config: site url must be an absolute http(s) url")
var ErrCanonicalConfigInvalid = errors.New("hreflang config: canonical_multilang section is invalid")
var ErrInjectorOutputDirRequired = errors.New("hreflang config: injector output directory is required")
var ErrInjectorWorkersInvalid = errors.New("hreflang config: injector workers must be zero or positive")
var ErrLoggingProviderRequired = errors.New("hreflang config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("hreflang config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("hreflang config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("hreflang config: logging format is invalid")

// Config aggregates everything the module needs to resolve tags for a site.
type Config struct {
	Enabled   bool
	SiteURL   string
	Canonical canonical.Settings
	Sources   SourcesConfig
	Injector  InjectorConfig
	Logging   LoggingConfig
}

// SourcesConfig points at the markdown sources carrying page front matter.
type SourcesConfig struct {
	Dir       string
	Pattern   string
	Recursive bool
}

// InjectorConfig controls the output directory post-processor.
type InjectorConfig struct {
	OutputDir string
	Pattern   string
	Workers   int
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig mirrors the layout of a Hexo site: sources under source/,
// rendered output under public/.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		SiteURL:   "http://localhost",
		Canonical: canonical.DefaultSettings(),
		Sources: SourcesConfig{
			Dir:       "",
			Pattern:   "*.md",
			Recursive: true,
		},
		Injector: InjectorConfig{
			OutputDir: "public",
			Pattern:   "*.html",
			Workers:   0,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// WithOverlay returns a copy of cfg with the canonical overlay applied on top
// of the current settings.
func (cfg Config) WithOverlay(overlay canonical.Overlay) Config {
	out := cfg
	out.Canonical = canonical.Merge(cfg.Canonical, overlay)
	out.Logging.Focus = append([]string(nil), cfg.Logging.Focus...)
	return out
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	siteURL := strings.TrimSpace(cfg.SiteURL)
	if siteURL == "" {
		return ErrSiteURLRequired
	}
	parsed, err := url.Parse(siteURL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %s", ErrSiteURLInvalid, siteURL)
	}
	if cfg.Canonical.Enabled {
		if err := canonical.Validate(cfg.Canonical); err != nil {
			return fmt.Errorf("%w: %w", ErrCanonicalConfigInvalid, err)
		}
	}
	if strings.TrimSpace(cfg.Injector.OutputDir) == "" {
		return ErrInjectorOutputDirRequired
	}
	if cfg.Injector.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInjectorWorkersInvalid, cfg.Injector.Workers)
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(provider, format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

// Active reports whether tags should be produced at all.
func (cfg Config) Active() bool {
	return cfg.Enabled && cfg.Canonical.Enabled
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(provider, format string) bool {
	format = strings.ToLower(strings.TrimSpace(format))
	if provider == "console" {
		return format == "text" || format == "json"
	}
	switch format {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
