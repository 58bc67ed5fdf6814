// Package canonical exposes the canonical/hreflang resolution API for hosts
// that embed the algorithm in their own pipeline.
// Use Merge to resolve Settings once, then BuildTags or Inject per page.
package canonical

import internal "github.com/goliatone/go-hreflang/internal/canonical"

type (
	Settings   = internal.Settings
	Overlay    = internal.Overlay
	Page       = internal.Page
	Alternate  = internal.Alternate
	TagSet     = internal.TagSet
	SkipReason = internal.SkipReason
)

const (
	SkipNone           = internal.SkipNone
	SkipDisabled       = internal.SkipDisabled
	SkipMissingPath    = internal.SkipMissingPath
	SkipAlreadyPresent = internal.SkipAlreadyPresent
	SkipNoHead         = internal.SkipNoHead
)

var ErrSettingsInvalid = internal.ErrSettingsInvalid

// DefaultSettings returns the built-in language configuration.
func DefaultSettings() Settings {
	return internal.DefaultSettings()
}

// Merge overlays host values onto defaults field by field.
func Merge(defaults Settings, overlay Overlay) Settings {
	return internal.Merge(defaults, overlay)
}

// Validate checks settings before they are used.
func Validate(s Settings) error {
	return internal.Validate(s)
}

// NormalizeBasePath strips the index filename and a non-default language prefix.
func NormalizeBasePath(path string, s Settings) string {
	return internal.NormalizeBasePath(path, s)
}

// ResolveCanonicalLanguage returns the authoritative language for a page.
func ResolveCanonicalLanguage(page Page, s Settings) string {
	return internal.ResolveCanonicalLanguage(page, s)
}

// ComposeURL joins the site URL with a relative path segment.
func ComposeURL(siteURL, segment string) string {
	return internal.ComposeURL(siteURL, segment)
}

// BuildTags computes the canonical URL and alternates for a page.
func BuildTags(siteURL string, page Page, s Settings) TagSet {
	return internal.BuildTags(siteURL, page, s)
}

// Inject inserts the page's link tags before the closing head tag.
func Inject(markup, siteURL string, page Page, s Settings) (string, SkipReason) {
	return internal.Inject(markup, siteURL, page, s)
}
