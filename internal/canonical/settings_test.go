package canonical

import (
	"errors"
	"testing"
)

func TestMergeOverlaysFieldByField(t *testing.T) {
	defaults := DefaultSettings()
	lang := "ja"
	disabled := false

	merged := Merge(defaults, Overlay{DefaultLanguage: &lang})
	if merged.DefaultLanguage != "ja" {
		t.Fatalf("expected default language ja, got %q", merged.DefaultLanguage)
	}
	if !merged.Enabled {
		t.Fatal("expected enabled to keep its default")
	}
	if len(merged.Languages) != 4 {
		t.Fatalf("expected default languages to be kept, got %v", merged.Languages)
	}

	merged = Merge(defaults, Overlay{Enabled: &disabled, Languages: []string{"en", "ja"}})
	if merged.Enabled {
		t.Fatal("expected overlay to disable")
	}
	if len(merged.Languages) != 2 || merged.Languages[1] != "ja" {
		t.Fatalf("expected languages to be replaced as a whole, got %v", merged.Languages)
	}
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	defaults := DefaultSettings()
	overlay := Overlay{Languages: []string{"en", "ja"}}

	merged := Merge(defaults, overlay)
	overlay.Languages[1] = "ko"
	if merged.Languages[1] != "ja" {
		t.Fatalf("merged settings share the overlay slice: %v", merged.Languages)
	}

	merged = Merge(defaults, Overlay{})
	merged.Languages[0] = "xx"
	if defaults.Languages[0] != "en" {
		t.Fatalf("merged settings share the defaults slice: %v", defaults.Languages)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(DefaultSettings()); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}

	cases := map[string]Settings{
		"empty languages":     {DefaultLanguage: "en"},
		"default not listed":  {DefaultLanguage: "fr", Languages: []string{"en"}},
		"missing default":     {Languages: []string{"en"}},
		"duplicate language":  {DefaultLanguage: "en", Languages: []string{"en", "ja", "ja"}},
		"slash in language":   {DefaultLanguage: "en", Languages: []string{"en", "zh/TW"}},
		"invalid bcp47 value": {DefaultLanguage: "en", Languages: []string{"en", "not a tag"}},
	}
	for name, settings := range cases {
		t.Run(name, func(t *testing.T) {
			err := Validate(settings)
			if !errors.Is(err, ErrSettingsInvalid) {
				t.Fatalf("expected ErrSettingsInvalid, got %v", err)
			}
		})
	}
}
