package injector

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-hreflang/internal/canonical"
	"github.com/goliatone/go-hreflang/internal/logging"
	"github.com/goliatone/go-hreflang/internal/pages"
	"github.com/goliatone/go-hreflang/pkg/interfaces"
)

// Service describes the output directory post-processor.
type Service interface {
	Inject(ctx context.Context, opts InjectOptions) (*Result, error)
	InjectPage(ctx context.Context, page canonical.Page, markup string) (string, canonical.SkipReason, error)
	Verify(ctx context.Context, opts VerifyOptions) (*VerifyResult, error)
}

// Config captures the values the injector reads on every run.
type Config struct {
	SiteURL  string
	Pattern  string
	Workers  int
	Settings canonical.Settings
}

// Dependencies lists the collaborators used by the injector.
type Dependencies struct {
	// Files exposes the rendered site, usually os.DirFS(outputDir).
	Files fs.FS
	// Writer persists rewritten pages. Nil discards writes.
	Writer Writer
	// Index supplies front matter metadata. Nil infers languages from paths.
	Index  *pages.Index
	Logger interfaces.Logger
}

// InjectOptions narrows the scope of a run.
type InjectOptions struct {
	// Paths limits the run to the given output files.
	Paths   []string
	DryRun  bool
	Workers int
}

// Result reports aggregated run metadata.
type Result struct {
	RunID     string
	Processed int
	Injected  int
	Skipped   int
	Pages     []PageDiagnostic
	Duration  time.Duration
	Errors    []error
	DryRun    bool
}

// PageDiagnostic records the outcome for one output file.
type PageDiagnostic struct {
	Path              string
	Language          string
	CanonicalLanguage string
	CanonicalURL      string
	Injected          bool
	Reason            canonical.SkipReason
	Err               error
}

// NewService wires an injector with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	writer := deps.Writer
	if writer == nil {
		writer = noopWriter{}
	}
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.html"
	}
	cfg.Pattern = pattern
	cfg.Settings = cfg.Settings.Clone()
	return &service{
		cfg:    cfg,
		files:  deps.Files,
		writer: writer,
		index:  deps.Index,
		logger: logger,
		now:    time.Now,
	}
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg    Config
	files  fs.FS
	writer Writer
	index  *pages.Index
	logger interfaces.Logger
	now    func() time.Time
}

type pageOutcome struct {
	diagnostic PageDiagnostic
	err        error
}

func (s *service) Inject(ctx context.Context, opts InjectOptions) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.files == nil {
		return nil, errFilesRequired
	}

	start := s.now()
	runID := uuid.NewString()
	logger := logging.WithRunID(s.logger, runID)

	paths, err := s.discover(ctx, opts.Paths)
	if err != nil {
		return nil, wrapDiscoveryError(err)
	}

	result := &Result{
		RunID:  runID,
		DryRun: opts.DryRun,
		Pages:  make([]PageDiagnostic, 0, len(paths)),
	}
	var (
		mu          sync.Mutex
		errorsSlice []error
	)
	collect := func(outcome pageOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Processed++
		result.Pages = append(result.Pages, outcome.diagnostic)
		if outcome.err != nil {
			errorsSlice = append(errorsSlice, outcome.err)
			return
		}
		if outcome.diagnostic.Injected {
			result.Injected++
			return
		}
		result.Skipped++
	}

	workers := s.effectiveWorkerCount(opts.Workers, len(paths))
	if workers <= 1 {
		for _, rel := range paths {
			if err := ctx.Err(); err != nil {
				errorsSlice = append(errorsSlice, err)
				break
			}
			collect(s.processPage(ctx, logger, rel, opts.DryRun))
		}
	} else if err := s.processConcurrently(ctx, logger, paths, workers, opts.DryRun, collect); err != nil {
		errorsSlice = append(errorsSlice, err)
	}

	sort.Slice(result.Pages, func(i, j int) bool {
		return result.Pages[i].Path < result.Pages[j].Path
	})
	result.Duration = s.now().Sub(start)

	logger.Info("injector.run.completed",
		"processed", result.Processed,
		"injected", result.Injected,
		"skipped", result.Skipped,
		"errors", len(errorsSlice),
		"dry_run", opts.DryRun,
		"duration_ms", result.Duration.Milliseconds(),
	)

	if len(errorsSlice) > 0 {
		result.Errors = append(result.Errors, errorsSlice...)
		return result, errors.Join(errorsSlice...)
	}
	return result, nil
}

func (s *service) InjectPage(ctx context.Context, page canonical.Page, markup string) (string, canonical.SkipReason, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return markup, canonical.SkipNone, err
	}
	out, reason := canonical.Inject(markup, s.cfg.SiteURL, page, s.cfg.Settings)
	return out, reason, nil
}

func (s *service) processConcurrently(
	ctx context.Context,
	logger interfaces.Logger,
	paths []string,
	workers int,
	dryRun bool,
	collect func(pageOutcome),
) error {
	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range jobs {
				collect(s.processPage(ctx, logger, rel, dryRun))
			}
		}()
	}

	for _, rel := range paths {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- rel:
		}
	}
	close(jobs)
	wg.Wait()
	return nil
}

func (s *service) processPage(ctx context.Context, logger interfaces.Logger, rel string, dryRun bool) pageOutcome {
	page := pages.Resolve(rel, s.index, s.cfg.Settings)
	outcome := pageOutcome{
		diagnostic: PageDiagnostic{
			Path:              rel,
			Language:          page.Language,
			CanonicalLanguage: canonical.ResolveCanonicalLanguage(page, s.cfg.Settings),
		},
	}
	pageLogger := logging.WithPageContext(logger, rel, page.Language)

	fail := func(err error) pageOutcome {
		outcome.err = err
		outcome.diagnostic.Err = err
		pageLogger.Error("injector.page.failed", "error", err)
		return outcome
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	data, err := fs.ReadFile(s.files, rel)
	if err != nil {
		return fail(wrapPageError(err, pageReadFailed, rel))
	}

	out, reason, err := s.InjectPage(ctx, page, string(data))
	if err != nil {
		return fail(err)
	}
	if reason != canonical.SkipNone {
		outcome.diagnostic.Reason = reason
		pageLogger.Debug("injector.page.skipped", "reason", string(reason))
		return outcome
	}

	tags := canonical.BuildTags(s.cfg.SiteURL, page, s.cfg.Settings)
	outcome.diagnostic.CanonicalURL = tags.CanonicalURL
	outcome.diagnostic.Injected = true

	if !dryRun {
		if err := s.writer.WriteFile(ctx, rel, []byte(out)); err != nil {
			outcome.diagnostic.Injected = false
			return fail(wrapPageError(err, pageWriteFailed, rel))
		}
	}
	pageLogger.Debug("injector.page.injected",
		"canonical", tags.CanonicalURL,
		"alternates", len(tags.Alternates),
		"dry_run", dryRun,
	)
	return outcome
}

// discover returns the slash separated output files to process, sorted.
func (s *service) discover(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		seen := make(map[string]struct{}, len(requested))
		out := make([]string, 0, len(requested))
		for _, raw := range requested {
			rel := path.Clean(strings.TrimLeft(strings.TrimSpace(raw), "/"))
			if rel == "." || rel == "" {
				continue
			}
			if _, ok := seen[rel]; ok {
				continue
			}
			seen[rel] = struct{}{}
			out = append(out, rel)
		}
		sort.Strings(out)
		return out, nil
	}

	var out []string
	err := fs.WalkDir(s.files, ".", func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if match, err := path.Match(s.cfg.Pattern, path.Base(current)); err != nil || !match {
			return nil
		}
		out = append(out, current)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) effectiveWorkerCount(override, pageCount int) int {
	workers := override
	if workers <= 0 {
		workers = s.cfg.Workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if pageCount > 0 && workers > pageCount {
		return pageCount
	}
	return workers
}

type disabledService struct{}

func (disabledService) Inject(context.Context, InjectOptions) (*Result, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) InjectPage(_ context.Context, _ canonical.Page, markup string) (string, canonical.SkipReason, error) {
	return markup, canonical.SkipDisabled, ErrServiceDisabled
}

func (disabledService) Verify(context.Context, VerifyOptions) (*VerifyResult, error) {
	return nil, ErrServiceDisabled
}
