package pages

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// Metadata is the per-page information the site pipeline exposes through
// front matter.
type Metadata struct {
	// Path is the output path of the rendered page, relative to the site root.
	Path              string
	Language          string
	CanonicalLanguage string
	Title             string
	// Source is the markdown file the metadata was read from.
	Source string
}

type frontMatterEnvelope struct {
	Title         string `yaml:"title"`
	Path          string `yaml:"path"`
	Permalink     string `yaml:"permalink"`
	Lang          string `yaml:"lang"`
	Language      string `yaml:"language"`
	CanonicalLang string `yaml:"canonical_lang"`
}

// ParseFrontMatter extracts page metadata from a markdown document. Documents
// without front matter yield empty metadata.
func ParseFrontMatter(source []byte) (Metadata, error) {
	var meta frontMatterEnvelope
	if _, err := frontmatter.Parse(bytes.NewReader(source), &meta); err != nil {
		return Metadata{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	out := Metadata{
		Path:              strings.TrimSpace(meta.Path),
		Language:          strings.TrimSpace(meta.Lang),
		CanonicalLanguage: strings.TrimSpace(meta.CanonicalLang),
		Title:             strings.TrimSpace(meta.Title),
	}
	if out.Path == "" {
		out.Path = strings.TrimSpace(meta.Permalink)
	}
	if out.Language == "" {
		out.Language = strings.TrimSpace(meta.Language)
	}
	return out, nil
}
