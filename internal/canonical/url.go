package canonical

import "strings"

// ComposeURL joins siteURL and a site-relative segment with a single slash.
// The root segment resolves to the bare site URL; any other segment loses its
// trailing slash.
func ComposeURL(siteURL, segment string) string {
	base := strings.TrimRight(siteURL, "/")
	segment = strings.TrimLeft(segment, "/")
	segment = strings.TrimRight(segment, "/")
	if segment == "" {
		return base
	}
	return base + "/" + segment
}
