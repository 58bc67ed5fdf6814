package di

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goliatone/go-hreflang/internal/logging/gologger"
	"github.com/goliatone/go-hreflang/internal/pages"
	"github.com/goliatone/go-hreflang/internal/runtimeconfig"
)

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider, ok := container.loggerProvider.(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}

	logger := provider.GetLogger("hreflang.test")
	if logger == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}

func TestConfigureLoggerProviderHonoursConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg, WithPageIndex(pages.NewIndex()), WithLogWriter(&buf))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	var entry map[string]any
	line, _, _ := strings.Cut(buf.String(), "\n")
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "container.configured" || entry["logger"] != "hreflang.container" {
		t.Fatalf("unexpected entry %#v", entry)
	}
	if container.LoggerProvider() == nil {
		t.Fatal("expected provider")
	}
}
