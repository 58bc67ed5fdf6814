package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-hreflang/internal/canonical"
	"github.com/goliatone/go-hreflang/internal/runtimeconfig"
)

func TestConfigValidate_AcceptsDefaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name:   "missing site url",
			mutate: func(cfg *runtimeconfig.Config) { cfg.SiteURL = " " },
			want:   runtimeconfig.ErrSiteURLRequired,
		},
		{
			name:   "relative site url",
			mutate: func(cfg *runtimeconfig.Config) { cfg.SiteURL = "example.com/blog" },
			want:   runtimeconfig.ErrSiteURLInvalid,
		},
		{
			name:   "unsupported scheme",
			mutate: func(cfg *runtimeconfig.Config) { cfg.SiteURL = "ftp://example.com" },
			want:   runtimeconfig.ErrSiteURLInvalid,
		},
		{
			name: "default language not listed",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Canonical.DefaultLanguage = "fr"
			},
			want: runtimeconfig.ErrCanonicalConfigInvalid,
		},
		{
			name:   "missing output dir",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Injector.OutputDir = "" },
			want:   runtimeconfig.ErrInjectorOutputDirRequired,
		},
		{
			name:   "negative workers",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Injector.Workers = -1 },
			want:   runtimeconfig.ErrInjectorWorkersInvalid,
		},
		{
			name:   "missing logging provider",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Provider = "" },
			want:   runtimeconfig.ErrLoggingProviderRequired,
		},
		{
			name:   "unknown logging provider",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Provider = "syslog" },
			want:   runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			name:   "invalid logging level",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Level = "verbose" },
			want:   runtimeconfig.ErrLoggingLevelInvalid,
		},
		{
			name: "invalid gologger format",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Logging.Provider = "gologger"
				cfg.Logging.Format = "xml"
			},
			want: runtimeconfig.ErrLoggingFormatInvalid,
		},
		{
			name: "gologger format on console provider",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Logging.Provider = "console"
				cfg.Logging.Format = "pretty"
			},
			want: runtimeconfig.ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_SkipsCanonicalChecksWhenDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Canonical.Enabled = false
	cfg.Canonical.Languages = nil

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled canonical settings to be ignored, got %v", err)
	}
	if cfg.Active() {
		t.Fatal("expected Active() to be false when canonical tags are disabled")
	}
}

func TestConfigWithOverlay_DoesNotMutateReceiver(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	lang := "ja"

	next := cfg.WithOverlay(canonical.Overlay{DefaultLanguage: &lang, Languages: []string{"ja", "en"}})

	if cfg.Canonical.DefaultLanguage != "en" || len(cfg.Canonical.Languages) != 4 {
		t.Fatalf("receiver mutated: %+v", cfg.Canonical)
	}
	if next.Canonical.DefaultLanguage != "ja" || len(next.Canonical.Languages) != 2 {
		t.Fatalf("overlay not applied: %+v", next.Canonical)
	}
}
