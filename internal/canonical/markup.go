package canonical

import (
	"html"
	"strings"
)

const (
	// CanonicalMarker is the prefix used to detect an existing canonical link.
	CanonicalMarker = `<link rel="canonical"`
	headClose       = "</head>"
	defaultIndent   = "  "
)

// CanonicalLink renders the canonical link element.
func (t TagSet) CanonicalLink() string {
	return `<link rel="canonical" href="` + html.EscapeString(t.CanonicalURL) + `" />`
}

// AlternateLinks renders one alternate link element per entry.
func (t TagSet) AlternateLinks() []string {
	out := make([]string, 0, len(t.Alternates))
	for _, alt := range t.Alternates {
		out = append(out, alt.Link())
	}
	return out
}

// Link renders the alternate as a link element.
func (a Alternate) Link() string {
	var b strings.Builder
	b.WriteString(`<link rel="alternate" hreflang="`)
	b.WriteString(html.EscapeString(a.Language))
	b.WriteString(`"`)
	if a.Canonical {
		b.WriteString(` data-canonical="true"`)
	}
	b.WriteString(` href="`)
	b.WriteString(html.EscapeString(a.URL))
	b.WriteString(`" />`)
	return b.String()
}

// Markup renders the canonical element followed by the alternates, one per
// line, each prefixed by indent.
func (t TagSet) Markup(indent string) string {
	lines := make([]string, 0, len(t.Alternates)+1)
	lines = append(lines, indent+t.CanonicalLink())
	for _, link := range t.AlternateLinks() {
		lines = append(lines, indent+link)
	}
	return strings.Join(lines, "\n")
}
