package injectcmd

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-hreflang/internal/commands"
	"github.com/goliatone/go-hreflang/internal/injector"
	"github.com/goliatone/go-hreflang/internal/logging"
	"github.com/goliatone/go-hreflang/pkg/interfaces"
)

var (
	_ command.Commander[InjectSiteCommand] = (*InjectSiteHandler)(nil)
	_ command.Commander[VerifySiteCommand] = (*VerifySiteHandler)(nil)
)

// InjectSiteHandler runs the injector through the shared command handler foundation.
type InjectSiteHandler struct {
	inner *commands.Handler[InjectSiteCommand]
}

// NewInjectSiteHandler constructs a handler wired to the provided injector service.
func NewInjectSiteHandler(service injector.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[InjectSiteCommand]) *InjectSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg InjectSiteCommand) error {
		operation := "inject"
		if msg.DryRun {
			operation = "inject_dry_run"
		}
		if service == nil || !gates.canonicalEnabled() {
			return skipDisabled(msg.ResultCallback, operation)
		}

		result, err := service.Inject(ctx, injector.InjectOptions{
			Paths:   normalizePaths(msg.Paths),
			DryRun:  msg.DryRun,
			Workers: msg.Workers,
		})
		if errors.Is(err, injector.ErrServiceDisabled) {
			return skipDisabled(msg.ResultCallback, operation)
		}
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Inject: result,
			Metadata: map[string]any{
				"operation": operation,
			},
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[InjectSiteCommand]{
		commands.WithLogger[InjectSiteCommand](baseLogger),
		commands.WithOperation[InjectSiteCommand]("inject.site"),
		commands.WithMessageFields(func(msg InjectSiteCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Paths) > 0 {
				fields["paths"] = len(msg.Paths)
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.Workers > 0 {
				fields["workers"] = msg.Workers
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[InjectSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InjectSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[InjectSiteCommand].
func (h *InjectSiteHandler) Execute(ctx context.Context, msg InjectSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// VerifySiteHandler checks rendered pages without modifying them.
type VerifySiteHandler struct {
	inner *commands.Handler[VerifySiteCommand]
}

// NewVerifySiteHandler constructs a handler that runs injector verification.
func NewVerifySiteHandler(service injector.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[VerifySiteCommand]) *VerifySiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg VerifySiteCommand) error {
		if service == nil || !gates.canonicalEnabled() {
			return skipDisabled(msg.ResultCallback, "verify")
		}

		result, err := service.Verify(ctx, injector.VerifyOptions{
			Paths: normalizePaths(msg.Paths),
		})
		if errors.Is(err, injector.ErrServiceDisabled) {
			return skipDisabled(msg.ResultCallback, "verify")
		}
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Verify: result,
			Metadata: map[string]any{
				"operation": "verify",
			},
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[VerifySiteCommand]{
		commands.WithLogger[VerifySiteCommand](baseLogger),
		commands.WithOperation[VerifySiteCommand]("inject.verify"),
		commands.WithMessageFields(func(msg VerifySiteCommand) map[string]any {
			if len(msg.Paths) == 0 {
				return nil
			}
			return map[string]any{"paths": len(msg.Paths)}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[VerifySiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &VerifySiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[VerifySiteCommand].
func (h *VerifySiteHandler) Execute(ctx context.Context, msg VerifySiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

func normalizePaths(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, value := range values {
		trimmed := strings.TrimLeft(strings.TrimSpace(value), "/")
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// skipDisabled reports a run that had nothing to do because tag injection is
// switched off. The handler completes without error.
func skipDisabled(cb ResultCallback, operation string) error {
	invokeCallback(cb, ResultEnvelope{
		Metadata: map[string]any{
			"operation": operation,
			"skipped":   SkipReasonDisabled,
		},
	})
	return commands.Skipped(SkipReasonDisabled)
}

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}
