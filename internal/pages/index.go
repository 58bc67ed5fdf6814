package pages

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-hreflang/internal/canonical"
	"github.com/goliatone/go-hreflang/internal/logging"
	"github.com/goliatone/go-hreflang/pkg/interfaces"
)

// IndexOptions configures source discovery.
type IndexOptions struct {
	// Root is the directory inside the filesystem to walk. Defaults to ".".
	Root string
	// Pattern limits discovered files (defaults to "*.md").
	Pattern   string
	Recursive bool
	Logger    interfaces.Logger
}

// Index maps output paths to page metadata. It is read-only once built.
type Index struct {
	entries map[string]Metadata
}

// NewIndex builds an index from already collected metadata. Entries without a
// path are dropped; the first entry wins on duplicate keys.
func NewIndex(items ...Metadata) *Index {
	idx := &Index{entries: make(map[string]Metadata, len(items))}
	for _, item := range items {
		idx.add(item)
	}
	return idx
}

func (idx *Index) add(item Metadata) bool {
	key := Key(item.Path)
	if key == "" {
		return false
	}
	if _, exists := idx.entries[key]; exists {
		return false
	}
	idx.entries[key] = item
	return true
}

// Lookup returns the metadata recorded for an output path.
func (idx *Index) Lookup(outputPath string) (Metadata, bool) {
	if idx == nil {
		return Metadata{}, false
	}
	meta, ok := idx.entries[Key(outputPath)]
	return meta, ok
}

// Len reports the number of indexed pages.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Entries returns the indexed metadata ordered by key.
func (idx *Index) Entries() []Metadata {
	if idx == nil {
		return nil
	}
	keys := make([]string, 0, len(idx.entries))
	for key := range idx.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]Metadata, 0, len(keys))
	for _, key := range keys {
		out = append(out, idx.entries[key])
	}
	return out
}

// Key normalises an output path so that "about/", "/about/",
// "about/index.html" and "about" share one entry.
func Key(outputPath string) string {
	key := strings.TrimSpace(outputPath)
	key = strings.TrimLeft(key, "/")
	key = strings.TrimSuffix(key, canonical.IndexFile)
	if key == "" {
		// The root page is stored under "/" so that it can be told apart from
		// an entry without a path.
		if strings.TrimSpace(outputPath) != "" {
			return "/"
		}
		return ""
	}
	if !strings.HasSuffix(key, "/") && !strings.Contains(path.Base(key), ".") {
		key += "/"
	}
	return key
}

// LoadIndex walks markdown sources and collects the metadata of every file
// that declares an output path.
func LoadIndex(ctx context.Context, fsys fs.FS, opts IndexOptions) (*Index, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	root := strings.Trim(strings.TrimSpace(opts.Root), "/")
	if root == "" {
		root = "."
	}
	pattern := strings.TrimSpace(opts.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}

	idx := NewIndex()
	walkErr := fs.WalkDir(fsys, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if current != root && !opts.Recursive {
				return fs.SkipDir
			}
			return nil
		}
		if match, err := path.Match(pattern, path.Base(current)); err != nil || !match {
			return nil
		}

		data, err := fs.ReadFile(fsys, current)
		if err != nil {
			return fmt.Errorf("pages: read %s: %w", current, err)
		}
		meta, err := ParseFrontMatter(data)
		if err != nil {
			return fmt.Errorf("pages: %s: %w", current, err)
		}
		meta.Source = current

		entryLogger := logging.WithPageContext(logger, meta.Path, meta.Language)
		if meta.Path == "" {
			entryLogger.Debug("pages.index.skipped", "source", current, "reason", "path_missing")
			return nil
		}
		if !idx.add(meta) {
			entryLogger.Warn("pages.index.duplicate", "source", current)
			return nil
		}
		entryLogger.Trace("pages.index.added", "source", current)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	logger.Debug("pages.index.loaded", "root", root, "pages", idx.Len())
	return idx, nil
}
