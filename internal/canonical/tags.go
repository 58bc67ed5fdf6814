package canonical

// Page is the per-page input handed over by the site pipeline.
type Page struct {
	// Path is site relative, never starts with "/" and may end in index.html.
	Path string
	// Language is the rendering language. Empty means the default language.
	Language string
	// CanonicalLanguage names the language the content originates in.
	CanonicalLanguage string
}

// Lang returns the rendering language, falling back to the default language.
func (p Page) Lang(s Settings) string {
	if p.Language == "" {
		return s.DefaultLanguage
	}
	return p.Language
}

// Alternate is one hreflang entry.
type Alternate struct {
	Language  string
	URL       string
	Canonical bool
}

// TagSet is the computed head metadata for a single page.
type TagSet struct {
	CanonicalURL string
	Alternates   []Alternate
}

// CanonicalAlternate returns the entry carrying the canonical marker.
func (t TagSet) CanonicalAlternate() (Alternate, bool) {
	for _, alt := range t.Alternates {
		if alt.Canonical {
			return alt, true
		}
	}
	return Alternate{}, false
}

// ResolveCanonicalLanguage returns the authoritative language for the page's
// content: the declared canonical language when it is configured, otherwise
// the default language. The rendering language is not consulted.
func ResolveCanonicalLanguage(page Page, s Settings) string {
	if page.CanonicalLanguage != "" && s.Has(page.CanonicalLanguage) {
		return page.CanonicalLanguage
	}
	return s.DefaultLanguage
}

// BuildTags computes the canonical URL and one alternate per configured
// language, in configured order.
func BuildTags(siteURL string, page Page, s Settings) TagSet {
	base := NormalizeBasePath(page.Path, s)
	canonicalLang := ResolveCanonicalLanguage(page, s)

	tags := TagSet{
		CanonicalURL: ComposeURL(siteURL, languagePath(canonicalLang, base, s)),
		Alternates:   make([]Alternate, 0, len(s.Languages)),
	}
	for _, lang := range s.Languages {
		tags.Alternates = append(tags.Alternates, Alternate{
			Language:  lang,
			URL:       ComposeURL(siteURL, languagePath(lang, base, s)),
			Canonical: lang == canonicalLang,
		})
	}
	return tags
}
