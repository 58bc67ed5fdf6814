// Package canonical resolves the canonical URL and hreflang alternates for a
// page of a multilingual static site. Every function is pure: the page, the
// site URL and the merged Settings fully determine the output.
package canonical
