package runtimeconfig

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-hreflang/internal/canonical"
)

const canonicalSectionKey = "canonical_multilang"

// ErrSiteFileInvalid reports a site file that cannot be decoded or fails the
// canonical_multilang schema.
var ErrSiteFileInvalid = errors.New("hreflang config: site file invalid")

//go:embed schema/canonical_multilang.schema.json
var canonicalSectionSchema []byte

var (
	compileOnce      sync.Once
	compiledSchema   *jsonschema.Schema
	compileSchemaErr error
)

// SiteFile holds the parts of a generator's site configuration this module
// reads: the public site URL and the canonical_multilang overlay.
type SiteFile struct {
	URL     string
	Overlay canonical.Overlay
}

type siteDocument struct {
	URL       string            `yaml:"url"`
	Canonical *canonicalSection `yaml:"canonical_multilang"`
}

type canonicalSection struct {
	Enable      *bool    `yaml:"enable"`
	DefaultLang *string  `yaml:"default_lang"`
	Languages   []string `yaml:"languages"`
}

// LoadSiteFile reads and parses the YAML site configuration at path.
func LoadSiteFile(path string) (SiteFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteFile{}, fmt.Errorf("hreflang config: read site file %s: %w", path, err)
	}
	return ParseSiteFile(data)
}

// ParseSiteFile decodes a YAML site configuration. Keys other than url and
// canonical_multilang are ignored.
func ParseSiteFile(data []byte) (SiteFile, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return SiteFile{}, fmt.Errorf("%w: %w", ErrSiteFileInvalid, err)
	}
	if section, ok := raw[canonicalSectionKey]; ok && section != nil {
		if err := validateCanonicalSection(section); err != nil {
			return SiteFile{}, fmt.Errorf("%w: %s: %w", ErrSiteFileInvalid, canonicalSectionKey, err)
		}
	}

	var doc siteDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return SiteFile{}, fmt.Errorf("%w: %w", ErrSiteFileInvalid, err)
	}

	file := SiteFile{URL: strings.TrimSpace(doc.URL)}
	if doc.Canonical != nil {
		file.Overlay = canonical.Overlay{
			Enabled:         doc.Canonical.Enable,
			DefaultLanguage: doc.Canonical.DefaultLang,
			Languages:       doc.Canonical.Languages,
		}
	}
	return file, nil
}

// ApplySiteFile returns a copy of cfg with the site file values layered on
// top. An empty URL keeps the configured site URL.
func (cfg Config) ApplySiteFile(file SiteFile) Config {
	out := cfg.WithOverlay(file.Overlay)
	if file.URL != "" {
		out.SiteURL = file.URL
	}
	return out
}

func validateCanonicalSection(section any) error {
	schema, err := canonicalSchema()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(section)
	if err != nil {
		return err
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}

func canonicalSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("canonical_multilang.json", bytes.NewReader(canonicalSectionSchema)); err != nil {
			compileSchemaErr = err
			return
		}
		compiledSchema, compileSchemaErr = compiler.Compile("canonical_multilang.json")
	})
	return compiledSchema, compileSchemaErr
}
