package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-hreflang/pkg/interfaces"
)

const (
	rootModule     = "hreflang"
	injectorModule = "hreflang.injector"
	pagesModule    = "hreflang.pages"
)

const (
	fieldPagePath     = "page_path"
	fieldPageLanguage = "lang"
	fieldRunID        = "run_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// InjectorLogger returns the logger namespace reserved for the site injector.
func InjectorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, injectorModule)
}

// PagesLogger returns the logger namespace reserved for the source index.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// WithPageContext enriches the logger with the page path and language. Empty
// values are ignored.
func WithPageContext(logger interfaces.Logger, path, lang string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldPagePath] = trimmed
	}
	if trimmed := strings.TrimSpace(lang); trimmed != "" {
		fields[fieldPageLanguage] = trimmed
	}
	return WithFields(logger, fields)
}

// WithRunID tags every entry with the identifier of an injector run.
func WithRunID(logger interfaces.Logger, runID string) interfaces.Logger {
	if strings.TrimSpace(runID) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldRunID: runID})
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
