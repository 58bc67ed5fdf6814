package canonical

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"
)

// ErrSettingsInvalid wraps every failure reported by Validate.
var ErrSettingsInvalid = errors.New("canonical: settings invalid")

// Settings is the merged configuration record consumed by every operation in
// this package. Callers resolve it once and treat it as read-only.
type Settings struct {
	Enabled         bool
	DefaultLanguage string
	Languages       []string
}

// Overlay carries host supplied values. Nil fields keep the default.
type Overlay struct {
	Enabled         *bool
	DefaultLanguage *string
	Languages       []string
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Enabled:         true,
		DefaultLanguage: "en",
		Languages:       []string{"en", "zh-TW", "zh-CN", "ja"},
	}
}

// Merge overlays the supplied values onto defaults field by field. A non-nil
// Languages slice replaces the default list as a whole.
func Merge(defaults Settings, overlay Overlay) Settings {
	out := Settings{
		Enabled:         defaults.Enabled,
		DefaultLanguage: defaults.DefaultLanguage,
		Languages:       cloneStrings(defaults.Languages),
	}
	if overlay.Enabled != nil {
		out.Enabled = *overlay.Enabled
	}
	if overlay.DefaultLanguage != nil {
		out.DefaultLanguage = *overlay.DefaultLanguage
	}
	if overlay.Languages != nil {
		out.Languages = cloneStrings(overlay.Languages)
	}
	return out
}

// IsDefault reports whether lang is the default language.
func (s Settings) IsDefault(lang string) bool {
	return lang == s.DefaultLanguage
}

// Has reports whether lang is one of the configured languages.
func (s Settings) Has(lang string) bool {
	for _, l := range s.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Clone returns a copy that does not share the language slice.
func (s Settings) Clone() Settings {
	s.Languages = cloneStrings(s.Languages)
	return s
}

// Validate checks the settings the way a host should before handing them to
// BuildTags. None of the core operations call it.
func Validate(s Settings) error {
	errs := validation.Errors{}
	if strings.TrimSpace(s.DefaultLanguage) == "" {
		errs["default_lang"] = validation.NewError("canonical.default_lang.required", "default_lang is required")
	} else if !s.Has(s.DefaultLanguage) {
		errs["default_lang"] = validation.NewError("canonical.default_lang.unlisted", "default_lang must be one of languages")
	}

	if len(s.Languages) == 0 {
		errs["languages"] = validation.NewError("canonical.languages.required", "languages must not be empty")
	}
	seen := make(map[string]struct{}, len(s.Languages))
	for _, lang := range s.Languages {
		if strings.TrimSpace(lang) == "" || strings.Contains(lang, "/") {
			errs["languages"] = validation.NewError("canonical.languages.invalid", "languages must not contain empty values or slashes")
			break
		}
		if _, err := language.Parse(lang); err != nil {
			errs["languages"] = validation.NewError("canonical.languages.tag_invalid", "language "+lang+" is not a valid BCP 47 tag")
			break
		}
		if _, ok := seen[lang]; ok {
			errs["languages"] = validation.NewError("canonical.languages.duplicate", "language "+lang+" is listed twice")
			break
		}
		seen[lang] = struct{}{}
	}

	if len(errs) > 0 {
		return errors.Join(ErrSettingsInvalid, errs)
	}
	return nil
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
