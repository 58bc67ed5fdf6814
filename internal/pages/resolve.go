package pages

import (
	"strings"

	"github.com/goliatone/go-hreflang/internal/canonical"
)

// Resolve builds the page context for a rendered output file. Metadata from
// the index takes precedence; otherwise the language is inferred from a
// leading non-default language segment.
func Resolve(outputPath string, idx *Index, s canonical.Settings) canonical.Page {
	rel := strings.TrimLeft(strings.TrimSpace(outputPath), "/")
	page := canonical.Page{Path: rel}

	if meta, ok := idx.Lookup(rel); ok {
		page.Language = meta.Language
		page.CanonicalLanguage = meta.CanonicalLanguage
	}
	if page.Language == "" {
		page.Language = InferLanguage(rel, s)
	}
	return page
}

// InferLanguage returns the language whose prefix the path lives under, or
// the default language.
func InferLanguage(outputPath string, s canonical.Settings) string {
	first, _, found := strings.Cut(outputPath, "/")
	if found && first != "" && !s.IsDefault(first) && s.Has(first) {
		return first
	}
	return s.DefaultLanguage
}
