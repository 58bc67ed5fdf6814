package injector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Writer persists rewritten pages. Paths are slash separated and relative to
// the output directory.
type Writer interface {
	WriteFile(ctx context.Context, rel string, data []byte) error
}

// NewDirWriter returns a Writer rooted at dir. Files are replaced atomically
// and keep their existing permissions.
func NewDirWriter(dir string) Writer {
	return &dirWriter{root: dir}
}

type dirWriter struct {
	root string
}

func (w *dirWriter) WriteFile(ctx context.Context, rel string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean := path.Clean(strings.TrimLeft(rel, "/"))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("injector: refusing to write outside output dir: %q", rel)
	}
	target := filepath.Join(w.root, filepath.FromSlash(clean))

	mode := os.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".hreflang-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return err
	}
	return nil
}

type noopWriter struct{}

func (noopWriter) WriteFile(context.Context, string, []byte) error { return nil }
