package injectcmd

import (
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-hreflang/internal/injector"
)

const (
	injectSiteMessageType = "hreflang.inject.site"
	verifySiteMessageType = "hreflang.inject.verify"
)

// SkipReasonDisabled is reported in ResultEnvelope.Metadata["skipped"] when
// canonical_multilang is switched off.
const SkipReasonDisabled = "disabled"

// ResultCallback receives the outcome of an inject or verify run. It is
// invoked synchronously from the handler, including when the run failed
// part way through.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope carries whichever result the operation produced.
type ResultEnvelope struct {
	Inject   *injector.Result
	Verify   *injector.VerifyResult
	Metadata map[string]any
}

// InjectSiteCommand rewrites rendered pages in the output directory.
type InjectSiteCommand struct {
	Paths          []string       `json:"paths,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	Workers        int            `json:"workers,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (InjectSiteCommand) Type() string { return injectSiteMessageType }

// Validate rejects empty or escaping paths and negative worker counts.
func (m InjectSiteCommand) Validate() error {
	errs := validation.Errors{}
	if err := validatePaths(m.Paths, "hreflang.inject.site.path_invalid"); err != nil {
		errs["paths"] = err
	}
	if m.Workers < 0 {
		errs["workers"] = validation.NewError("hreflang.inject.site.workers_invalid", "workers must be zero or positive")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// VerifySiteCommand checks rendered pages against the configured tags.
type VerifySiteCommand struct {
	Paths          []string       `json:"paths,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (VerifySiteCommand) Type() string { return verifySiteMessageType }

// Validate rejects empty or escaping paths.
func (m VerifySiteCommand) Validate() error {
	if err := validatePaths(m.Paths, "hreflang.inject.verify.path_invalid"); err != nil {
		return validation.Errors{"paths": err}
	}
	return nil
}

// FeatureGates exposes runtime switches used to guard handler execution.
type FeatureGates struct {
	CanonicalEnabled func() bool
}

func (g FeatureGates) canonicalEnabled() bool {
	if g.CanonicalEnabled == nil {
		return false
	}
	return g.CanonicalEnabled()
}

func validatePaths(paths []string, code string) error {
	for _, raw := range paths {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return validation.NewError(code, "paths must not contain empty values")
		}
		clean := path.Clean(strings.TrimLeft(trimmed, "/"))
		if clean == ".." || strings.HasPrefix(clean, "../") {
			return validation.NewError(code, "paths must stay inside the output directory")
		}
	}
	return nil
}
