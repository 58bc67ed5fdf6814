package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-hreflang/pkg/interfaces"
)

type logEntry struct {
	level  string
	msg    string
	fields map[string]any
	args   []any
}

type fieldsRecorder struct {
	fields  map[string]any
	entries *[]logEntry
}

func newFieldsRecorder() *fieldsRecorder {
	return &fieldsRecorder{entries: &[]logEntry{}}
}

func (r *fieldsRecorder) record(level, msg string, args []any) {
	*r.entries = append(*r.entries, logEntry{level: level, msg: msg, fields: r.fields, args: args})
}

func (r *fieldsRecorder) Trace(msg string, args ...any) { r.record("trace", msg, args) }
func (r *fieldsRecorder) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *fieldsRecorder) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *fieldsRecorder) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *fieldsRecorder) Error(msg string, args ...any) { r.record("error", msg, args) }
func (r *fieldsRecorder) Fatal(msg string, args ...any) { r.record("fatal", msg, args) }

func (r *fieldsRecorder) WithContext(context.Context) interfaces.Logger { return r }

func (r *fieldsRecorder) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(r.fields)+len(fields))
	for k, v := range r.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &fieldsRecorder{fields: merged, entries: r.entries}
}

func argValue(args []any, key string) any {
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == key {
			return args[i+1]
		}
	}
	return nil
}

func TestDefaultTelemetryAttachesExecutionFields(t *testing.T) {
	rec := newFieldsRecorder()
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithOperation[testMessage]("inject.site"),
		WithMessageFields(func(testMessage) map[string]any {
			return map[string]any{"dry_run": true}
		}),
		WithTelemetry(DefaultTelemetry[testMessage](rec)),
	)

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	entries := *rec.entries
	if len(entries) != 1 {
		t.Fatalf("expected a single outcome entry, got %#v", entries)
	}
	got := entries[0]
	if got.level != "info" || got.msg != "command.execute.success" {
		t.Fatalf("unexpected entry %#v", got)
	}
	if got.fields["operation"] != "inject.site" || got.fields["dry_run"] != true || got.fields["command"] != "hreflang.test.message" {
		t.Fatalf("expected execution fields on the outcome entry, got %v", got.fields)
	}
}

func TestDefaultTelemetryToleratesLoggersWithoutFields(t *testing.T) {
	telemetry := DefaultTelemetry[testMessage](nil)
	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Fields: map[string]any{"paths": 1},
		Status: TelemetryStatusFailed,
		Error:  errors.New("boom"),
	})
}

func TestHandlerReportsSkippedCommands(t *testing.T) {
	rec := newFieldsRecorder()
	var info TelemetryInfo
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return Skipped("disabled")
	},
		WithLogger[testMessage](rec),
		WithTelemetry[testMessage](func(ctx context.Context, msg testMessage, got TelemetryInfo) {
			info = got
		}),
	)

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected skipped command to succeed, got %v", err)
	}
	if info.Status != TelemetryStatusSkipped || info.SkipReason != "disabled" || info.Error != nil {
		t.Fatalf("unexpected telemetry %+v", info)
	}
}

func TestHandlerLogsSkipWithoutTelemetry(t *testing.T) {
	rec := newFieldsRecorder()
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return Skipped("disabled")
	}, WithLogger[testMessage](rec))

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	entries := *rec.entries
	last := entries[len(entries)-1]
	if last.msg != "command.execute.skipped" || argValue(last.args, "reason") != "disabled" {
		t.Fatalf("expected skip entry with reason, got %#v", last)
	}
}

func TestSkipReasonSurvivesWrapping(t *testing.T) {
	err := errors.Join(errors.New("context"), Skipped("disabled"))
	if reason, ok := SkipReason(err); !ok || reason != "disabled" {
		t.Fatalf("expected wrapped skip reason, got %q %v", reason, ok)
	}
	if _, ok := SkipReason(errors.New("boom")); ok {
		t.Fatal("expected plain errors not to be skips")
	}
}

func TestHandlerTimeoutIsCategorised(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		<-ctx.Done()
		return ctx.Err()
	}, WithTimeout[testMessage](time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline to remain visible, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
