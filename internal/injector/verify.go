package injector

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-hreflang/internal/canonical"
	"github.com/goliatone/go-hreflang/internal/logging"
	"github.com/goliatone/go-hreflang/internal/pages"
)

// Issue codes reported by Verify.
const (
	IssueCanonicalMissing     = "canonical_missing"
	IssueCanonicalDuplicate   = "canonical_duplicate"
	IssueCanonicalMismatch    = "canonical_url_mismatch"
	IssueAlternateMissing     = "alternate_missing"
	IssueAlternateDuplicate   = "alternate_duplicate"
	IssueAlternateUnknown     = "alternate_unknown"
	IssueAlternateURLMismatch = "alternate_url_mismatch"
	IssueMarkerCount          = "marker_count"
	IssueMarkerMismatch       = "marker_mismatch"
)

// VerifyOptions narrows the pages inspected by Verify.
type VerifyOptions struct {
	Paths []string
}

// VerifyResult summarises a verification pass.
type VerifyResult struct {
	Checked int
	Issues  []Issue
}

// Issue describes one problem found in a rendered page.
type Issue struct {
	Path    string
	Code    string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Path, i.Code, i.Message)
}

// Verify parses rendered pages and checks the link tags against the tags the
// current settings would produce. Pages without a head element are ignored.
func (s *service) Verify(ctx context.Context, opts VerifyOptions) (*VerifyResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.files == nil {
		return nil, errFilesRequired
	}

	paths, err := s.discover(ctx, opts.Paths)
	if err != nil {
		return nil, wrapDiscoveryError(err)
	}

	result := &VerifyResult{}
	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		data, err := fs.ReadFile(s.files, rel)
		if err != nil {
			return result, wrapPageError(err, pageReadFailed, rel)
		}
		if !bytes.Contains(data, []byte("</head>")) {
			continue
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
		if err != nil {
			return result, wrapPageError(err, pageParseFailed, rel)
		}
		page := pages.Resolve(rel, s.index, s.cfg.Settings)
		expected := canonical.BuildTags(s.cfg.SiteURL, page, s.cfg.Settings)

		result.Checked++
		issues := inspectDocument(rel, doc, expected)
		if len(issues) > 0 {
			logging.WithPageContext(s.logger, rel, page.Language).
				Warn("injector.verify.issues", "count", len(issues))
		}
		result.Issues = append(result.Issues, issues...)
	}

	s.logger.Info("injector.verify.completed",
		"checked", result.Checked,
		"issues", len(result.Issues),
	)
	if len(result.Issues) > 0 {
		return result, verificationError(len(result.Issues))
	}
	return result, nil
}

func inspectDocument(rel string, doc *goquery.Document, expected canonical.TagSet) []Issue {
	var issues []Issue
	report := func(code, format string, args ...any) {
		issues = append(issues, Issue{Path: rel, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	canonicals := doc.Find(`link[rel="canonical"]`)
	switch n := canonicals.Length(); {
	case n == 0:
		report(IssueCanonicalMissing, "no canonical link")
	case n > 1:
		report(IssueCanonicalDuplicate, "%d canonical links", n)
	default:
		if href := strings.TrimSpace(canonicals.AttrOr("href", "")); href != expected.CanonicalURL {
			report(IssueCanonicalMismatch, "canonical %q, expected %q", href, expected.CanonicalURL)
		}
	}

	want := make(map[string]string, len(expected.Alternates))
	for _, alt := range expected.Alternates {
		want[alt.Language] = alt.URL
	}
	seen := make(map[string]int, len(want))
	markers := 0
	doc.Find(`link[rel="alternate"][hreflang]`).Each(func(_ int, sel *goquery.Selection) {
		lang := strings.TrimSpace(sel.AttrOr("hreflang", ""))
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		seen[lang]++

		if sel.AttrOr("data-canonical", "") == "true" {
			markers++
			if href != expected.CanonicalURL {
				report(IssueMarkerMismatch, "marked alternate %s points to %q, canonical is %q", lang, href, expected.CanonicalURL)
			}
		}

		url, ok := want[lang]
		switch {
		case !ok:
			report(IssueAlternateUnknown, "hreflang %q is not configured", lang)
		case seen[lang] == 2:
			report(IssueAlternateDuplicate, "hreflang %q repeated", lang)
		case seen[lang] == 1 && href != url:
			report(IssueAlternateURLMismatch, "hreflang %s points to %q, expected %q", lang, href, url)
		}
	})

	missing := make([]string, 0)
	for lang := range want {
		if seen[lang] == 0 {
			missing = append(missing, lang)
		}
	}
	sort.Strings(missing)
	for _, lang := range missing {
		report(IssueAlternateMissing, "no alternate for %s", lang)
	}

	if markers != 1 {
		report(IssueMarkerCount, "%d alternates marked canonical, expected 1", markers)
	}
	return issues
}
