package di

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-hreflang/internal/commands"
	injectcmd "github.com/goliatone/go-hreflang/internal/commands/inject"
	"github.com/goliatone/go-hreflang/internal/injector"
	"github.com/goliatone/go-hreflang/internal/logging"
	"github.com/goliatone/go-hreflang/internal/logging/console"
	"github.com/goliatone/go-hreflang/internal/logging/gologger"
	"github.com/goliatone/go-hreflang/internal/pages"
	"github.com/goliatone/go-hreflang/internal/runtimeconfig"
	"github.com/goliatone/go-hreflang/pkg/interfaces"
)

// CommandRegistry receives command handlers built by the container.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer

	outputFS  fs.FS
	sourcesFS fs.FS
	writer    injector.Writer
	pageIndex *pages.Index

	injectorSvc     injector.Service
	commandRegistry CommandRegistry

	injectHandler *injectcmd.InjectSiteHandler
	verifyHandler *injectcmd.VerifySiteHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLogWriter redirects console provider output. Defaults to stderr.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// WithOutputFS overrides the rendered site filesystem. When set without
// WithWriter, rewritten pages are discarded.
func WithOutputFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.outputFS = fsys
	}
}

// WithSourcesFS overrides the filesystem holding markdown sources.
func WithSourcesFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.sourcesFS = fsys
	}
}

// WithWriter overrides how rewritten pages are persisted.
func WithWriter(w injector.Writer) Option {
	return func(c *Container) {
		c.writer = w
	}
}

// WithPageIndex supplies a prebuilt front matter index and skips source loading.
func WithPageIndex(idx *pages.Index) Option {
	return func(c *Container) {
		c.pageIndex = idx
	}
}

// WithInjectorService overrides the injector binding.
func WithInjectorService(svc injector.Service) Option {
	return func(c *Container) {
		c.injectorSvc = svc
	}
}

// WithCommandRegistry registers the command handlers once they are built.
func WithCommandRegistry(registry CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = registry
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:    cfg,
		logWriter: os.Stderr,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configurePageIndex(); err != nil {
		return nil, err
	}
	c.configureInjector()
	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "hreflang.container").Debug("container.configured",
		"active", c.Config.Active(),
		"languages", len(c.Config.Canonical.Languages),
		"indexed_pages", c.pageIndex.Len(),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(logCfg)
		if err != nil {
			return fmt.Errorf("di: configure go-logger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{
			Writer: c.logWriter,
			Level:  logCfg.Level,
			Format: logCfg.Format,
		})
	}
	return nil
}

func (c *Container) configurePageIndex() error {
	if c.pageIndex != nil {
		return nil
	}

	sources := c.sourcesFS
	if sources == nil {
		dir := strings.TrimSpace(c.Config.Sources.Dir)
		if dir == "" {
			c.pageIndex = pages.NewIndex()
			return nil
		}
		sources = os.DirFS(dir)
	}

	idx, err := pages.LoadIndex(context.Background(), sources, pages.IndexOptions{
		Pattern:   c.Config.Sources.Pattern,
		Recursive: c.Config.Sources.Recursive,
		Logger:    logging.PagesLogger(c.loggerProvider),
	})
	if err != nil {
		return fmt.Errorf("di: load page index: %w", err)
	}
	c.pageIndex = idx
	return nil
}

func (c *Container) configureInjector() {
	if c.injectorSvc != nil {
		return
	}
	if !c.Config.Active() {
		c.injectorSvc = injector.NewDisabledService()
		return
	}

	files := c.outputFS
	writer := c.writer
	if files == nil {
		files = os.DirFS(c.Config.Injector.OutputDir)
		if writer == nil {
			writer = injector.NewDirWriter(c.Config.Injector.OutputDir)
		}
	}

	c.injectorSvc = injector.NewService(injector.Config{
		SiteURL:  c.Config.SiteURL,
		Pattern:  c.Config.Injector.Pattern,
		Workers:  c.Config.Injector.Workers,
		Settings: c.Config.Canonical,
	}, injector.Dependencies{
		Files:  files,
		Writer: writer,
		Index:  c.pageIndex,
		Logger: logging.InjectorLogger(c.loggerProvider),
	})
}

func (c *Container) configureCommands() error {
	logger := commands.CommandLogger(c.loggerProvider, "inject")
	gates := injectcmd.FeatureGates{CanonicalEnabled: c.Config.Active}

	c.injectHandler = injectcmd.NewInjectSiteHandler(c.injectorSvc, logger, gates)
	c.verifyHandler = injectcmd.NewVerifySiteHandler(c.injectorSvc, logger, gates)

	if c.commandRegistry == nil {
		return nil
	}
	for _, handler := range []any{c.injectHandler, c.verifyHandler} {
		if err := c.commandRegistry.RegisterCommand(handler); err != nil {
			return fmt.Errorf("di: register command: %w", err)
		}
	}
	return nil
}

// LoggerProvider exposes the provider used for module loggers.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// InjectorService exposes the configured injector.
func (c *Container) InjectorService() injector.Service {
	return c.injectorSvc
}

// PageIndex exposes the front matter index. It is never nil.
func (c *Container) PageIndex() *pages.Index {
	return c.pageIndex
}

// InjectSiteHandler exposes the inject command handler.
func (c *Container) InjectSiteHandler() *injectcmd.InjectSiteHandler {
	return c.injectHandler
}

// VerifySiteHandler exposes the verify command handler.
func (c *Container) VerifySiteHandler() *injectcmd.VerifySiteHandler {
	return c.verifyHandler
}
