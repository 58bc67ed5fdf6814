package canonical

import "strings"

// SkipReason explains why Inject left the markup untouched.
type SkipReason string

const (
	SkipNone           SkipReason = ""
	SkipDisabled       SkipReason = "disabled"
	SkipMissingPath    SkipReason = "missing_path"
	SkipAlreadyPresent SkipReason = "canonical_present"
	SkipNoHead         SkipReason = "head_missing"
)

// Inject inserts the page's tags immediately before the first closing head
// tag. The markup is returned unchanged, with a reason, when the feature is
// disabled, the page has no path, a canonical link already exists, or the
// document has no closing head tag.
func Inject(markup, siteURL string, page Page, s Settings) (string, SkipReason) {
	if !s.Enabled {
		return markup, SkipDisabled
	}
	if page.Path == "" {
		return markup, SkipMissingPath
	}
	if strings.Contains(markup, CanonicalMarker) {
		return markup, SkipAlreadyPresent
	}
	idx := strings.Index(markup, headClose)
	if idx < 0 {
		return markup, SkipNoHead
	}

	fragment := BuildTags(siteURL, page, s).Markup(defaultIndent)

	var b strings.Builder
	b.Grow(len(markup) + len(fragment) + 1)
	b.WriteString(markup[:idx])
	b.WriteString(fragment)
	b.WriteString("\n")
	b.WriteString(markup[idx:])
	return b.String(), SkipNone
}
