package pages

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-hreflang/internal/canonical"
)

func sourceFS() fstest.MapFS {
	return fstest.MapFS{
		"_posts/cisp.md": {Data: []byte("---\ntitle: CISP\npath: 2025/10/cisp/\nlang: en\ncanonical_lang: zh-CN\n---\nbody\n")},
		"_posts/zh-CN/cisp.md": {Data: []byte("---\ntitle: CISP\npath: zh-CN/2025/10/cisp/index.html\nlang: zh-CN\ncanonical_lang: zh-CN\n---\n")},
		"_posts/draft.md":      {Data: []byte("---\ntitle: Draft\n---\nno path\n")},
		"_posts/plain.md":      {Data: []byte("no front matter at all\n")},
		"_posts/dup.md":        {Data: []byte("---\npermalink: /2025/10/cisp\nlang: ja\n---\n")},
		"about/index.md":       {Data: []byte("---\npermalink: about/\nlanguage: en\n---\n")},
		"_posts/notes.txt":     {Data: []byte("---\npath: notes/\n---\n")},
	}
}

func TestLoadIndexCollectsPagesWithPaths(t *testing.T) {
	idx, err := LoadIndex(context.Background(), sourceFS(), IndexOptions{Recursive: true})
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if idx.Len() != 3 {
		t.Fatalf("expected 3 indexed pages, got %d: %+v", idx.Len(), idx.Entries())
	}

	meta, ok := idx.Lookup("2025/10/cisp/index.html")
	if !ok {
		t.Fatal("expected cisp page to be indexed")
	}
	if meta.CanonicalLanguage != "zh-CN" || meta.Language != "en" {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if meta.Source != "_posts/cisp.md" {
		t.Fatalf("expected first source to win the duplicate, got %s", meta.Source)
	}

	if meta, ok := idx.Lookup("/about/"); !ok || meta.Language != "en" {
		t.Fatalf("expected about page via permalink and language key, got %+v %v", meta, ok)
	}
	if _, ok := idx.Lookup("notes/"); ok {
		t.Fatal("expected files outside the pattern to be ignored")
	}
}

func TestLoadIndexHonoursRecursionAndRoot(t *testing.T) {
	idx, err := LoadIndex(context.Background(), sourceFS(), IndexOptions{Root: "_posts"})
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if _, ok := idx.Lookup("zh-CN/2025/10/cisp/"); ok {
		t.Fatal("expected nested directory to be skipped without recursion")
	}
	if _, ok := idx.Lookup("2025/10/cisp/"); !ok {
		t.Fatal("expected top level post to be indexed")
	}
}

func TestLoadIndexStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadIndex(ctx, sourceFS(), IndexOptions{Recursive: true})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadIndexReportsBrokenFrontMatter(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.md": {Data: []byte("---\ntitle: [unterminated\n---\n")},
	}
	if _, err := LoadIndex(context.Background(), fsys, IndexOptions{}); err == nil {
		t.Fatal("expected front matter error")
	}
}

func TestKey(t *testing.T) {
	cases := map[string]string{
		"":                  "",
		"index.html":        "/",
		"/":                 "/",
		"about":             "about/",
		"/about/":           "about/",
		"about/index.html":  "about/",
		"feed.xml":          "feed.xml",
		"zh-TW/index.html":  "zh-TW/",
		"2025/10/cisp":      "2025/10/cisp/",
		"downloads/app.zip": "downloads/app.zip",
	}
	for in, want := range cases {
		if got := Key(in); got != want {
			t.Fatalf("Key(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve(t *testing.T) {
	settings := canonical.DefaultSettings()
	idx := NewIndex(Metadata{Path: "2025/10/cisp/", Language: "en", CanonicalLanguage: "zh-CN"})

	page := Resolve("2025/10/cisp/index.html", idx, settings)
	if page.Path != "2025/10/cisp/index.html" || page.CanonicalLanguage != "zh-CN" || page.Language != "en" {
		t.Fatalf("unexpected indexed page %+v", page)
	}

	page = Resolve("/ja/games/index.html", idx, settings)
	if page.Path != "ja/games/index.html" || page.Language != "ja" || page.CanonicalLanguage != "" {
		t.Fatalf("unexpected inferred page %+v", page)
	}

	page = Resolve("tools/index.html", nil, settings)
	if page.Language != "en" {
		t.Fatalf("expected default language, got %+v", page)
	}
}

func TestInferLanguage(t *testing.T) {
	settings := canonical.DefaultSettings()
	cases := map[string]string{
		"zh-TW/tools/index.html": "zh-TW",
		"en/tools/index.html":    "en",
		"fr/tools/index.html":    "en",
		"ja":                     "en",
		"index.html":             "en",
	}
	for in, want := range cases {
		if got := InferLanguage(in, settings); got != want {
			t.Fatalf("InferLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
