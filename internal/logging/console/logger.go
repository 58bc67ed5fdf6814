// Package console provides a dependency-free logger provider for the CLI and
// for hosts that do not configure go-logger. Entries are rendered by log/slog
// as key=value text or JSON lines.
package console

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-hreflang/pkg/interfaces"
)

// Level is a slog level extended with trace and fatal.
type Level = slog.Level

const (
	LevelTrace Level = slog.LevelDebug - 4
	LevelDebug Level = slog.LevelDebug
	LevelInfo  Level = slog.LevelInfo
	LevelWarn  Level = slog.LevelWarn
	LevelError Level = slog.LevelError
	LevelFatal Level = slog.LevelError + 4
)

// ParseLevel maps a configured level name to a Level. Unknown and empty names
// resolve to LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// LevelName renders a level the way entries print it.
func LevelName(level Level) string {
	switch {
	case level < LevelDebug:
		return "TRACE"
	case level >= LevelFatal:
		return "FATAL"
	default:
		return level.String()
	}
}

// Options configures the console provider.
type Options struct {
	// Writer defaults to stderr so CLI output on stdout stays clean.
	Writer io.Writer
	// Level is a level name as accepted by ParseLevel.
	Level string
	// Format selects "json" lines; anything else renders text.
	Format   string
	TimeFunc func() time.Time
}

type provider struct {
	handler slog.Handler
	clock   func() time.Time
}

// NewProvider constructs a console-backed provider.
func NewProvider(opts Options) interfaces.LoggerProvider {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}
	clock := opts.TimeFunc
	if clock == nil {
		clock = time.Now
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       ParseLevel(opts.Level),
		ReplaceAttr: renameLevel,
	}
	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}
	return &provider{handler: handler, clock: clock}
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	handler := p.handler
	if name = strings.TrimSpace(name); name != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("logger", name)})
	}
	return &consoleLogger{handler: handler, clock: p.clock, ctx: context.Background()}
}

func renameLevel(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slog.LevelKey {
		if level, ok := attr.Value.Any().(slog.Level); ok {
			attr.Value = slog.StringValue(LevelName(level))
		}
	}
	return attr
}

type consoleLogger struct {
	handler slog.Handler
	clock   func() time.Time
	ctx     context.Context
}

var (
	_ interfaces.Logger       = (*consoleLogger)(nil)
	_ interfaces.FieldsLogger = (*consoleLogger)(nil)
)

func (l *consoleLogger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args) }
func (l *consoleLogger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args) }
func (l *consoleLogger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args) }
func (l *consoleLogger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args) }
func (l *consoleLogger) Error(msg string, args ...any) { l.log(LevelError, msg, args) }

// Fatal records the entry at fatal level. It does not exit the process.
func (l *consoleLogger) Fatal(msg string, args ...any) { l.log(LevelFatal, msg, args) }

// WithFields attaches fields in key order so entries render deterministically.
func (l *consoleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, fields[key]))
	}
	return &consoleLogger{handler: l.handler.WithAttrs(attrs), clock: l.clock, ctx: l.ctx}
}

// WithContext binds ctx to the handler calls of the returned logger.
func (l *consoleLogger) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return &consoleLogger{handler: l.handler, clock: l.clock, ctx: ctx}
}

func (l *consoleLogger) log(level Level, msg string, args []any) {
	if !l.handler.Enabled(l.ctx, level) {
		return
	}
	record := slog.NewRecord(l.clock(), level, msg, 0)
	record.Add(args...)
	// Best effort: a failing log writer must not fail the injector run.
	_ = l.handler.Handle(l.ctx, record)
}
