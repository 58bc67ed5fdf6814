package canonical

import "strings"

// IndexFile is the directory index filename written by the generator.
const IndexFile = "index.html"

// NormalizeBasePath returns the language-neutral identity of an output path.
// The trailing index filename is dropped first, then at most one leading
// segment naming a non-default configured language. The result is either ""
// (site root) or a relative path.
func NormalizeBasePath(path string, s Settings) string {
	base := strings.TrimSuffix(path, IndexFile)
	return stripLanguagePrefix(base, s)
}

func stripLanguagePrefix(path string, s Settings) string {
	first, rest, found := strings.Cut(path, "/")
	if !found || first == "" {
		return path
	}
	if s.IsDefault(first) || !s.Has(first) {
		return path
	}
	return rest
}

// languagePath prefixes base with lang unless lang is the default language.
func languagePath(lang, base string, s Settings) string {
	if s.IsDefault(lang) {
		return base
	}
	return lang + "/" + base
}
