package injector

import (
	"context"
	"maps"
	"sync"
	"testing"

	"github.com/goliatone/go-hreflang/internal/canonical"
	"github.com/goliatone/go-hreflang/internal/pages"
	"github.com/goliatone/go-hreflang/pkg/interfaces"
)

type entry struct {
	msg    string
	fields map[string]any
}

type entryLog struct {
	mu      sync.Mutex
	entries []entry
}

type fieldLogger struct {
	log    *entryLog
	fields map[string]any
}

func (l *fieldLogger) add(msg string) {
	l.log.mu.Lock()
	defer l.log.mu.Unlock()
	l.log.entries = append(l.log.entries, entry{msg: msg, fields: l.fields})
}

func (l *fieldLogger) Trace(msg string, _ ...any) { l.add(msg) }
func (l *fieldLogger) Debug(msg string, _ ...any) { l.add(msg) }
func (l *fieldLogger) Info(msg string, _ ...any)  { l.add(msg) }
func (l *fieldLogger) Warn(msg string, _ ...any)  { l.add(msg) }
func (l *fieldLogger) Error(msg string, _ ...any) { l.add(msg) }
func (l *fieldLogger) Fatal(msg string, _ ...any) { l.add(msg) }

func (l *fieldLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *fieldLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = map[string]any{}
	}
	maps.Copy(merged, fields)
	return &fieldLogger{log: l.log, fields: merged}
}

func TestInjectTagsEveryEntryWithRunID(t *testing.T) {
	log := &entryLog{}
	svc := NewService(Config{
		SiteURL:  testSiteURL,
		Workers:  3,
		Settings: canonical.DefaultSettings(),
	}, Dependencies{
		Files:  sitePages(),
		Index:  pages.NewIndex(),
		Logger: &fieldLogger{log: log},
	})

	result, err := svc.Inject(context.Background(), InjectOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Inject: %v", err)
	}
	if len(log.entries) == 0 {
		t.Fatal("expected log entries")
	}
	pageEntries := 0
	for _, e := range log.entries {
		if e.fields["run_id"] != result.RunID {
			t.Fatalf("entry %s missing run id %s: %v", e.msg, result.RunID, e.fields)
		}
		if _, ok := e.fields["page_path"]; ok {
			pageEntries++
		}
	}
	if pageEntries < result.Processed {
		t.Fatalf("expected at least one page scoped entry per page, got %d for %d pages", pageEntries, result.Processed)
	}
}
