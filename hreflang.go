package hreflang

import (
	"github.com/goliatone/go-hreflang/internal/canonical"
	"github.com/goliatone/go-hreflang/internal/di"
	"github.com/goliatone/go-hreflang/internal/injector"
)

// InjectorService exports the output directory post-processor contract.
type InjectorService = injector.Service

// SkipReason explains why a page was left untouched.
type SkipReason = canonical.SkipReason

// Module represents the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration the module was built with.
func (m *Module) Config() Config {
	return m.container.Config
}

// BuildTags computes the canonical URL and alternates for a page.
func (m *Module) BuildTags(page Page) TagSet {
	cfg := m.container.Config
	return canonical.BuildTags(cfg.SiteURL, page, cfg.Canonical)
}

// Inject inserts the page's tags into markup. Disabled modules return the
// markup unchanged.
func (m *Module) Inject(markup string, page Page) (string, SkipReason) {
	cfg := m.container.Config
	if !cfg.Enabled {
		return markup, canonical.SkipDisabled
	}
	return canonical.Inject(markup, cfg.SiteURL, page, cfg.Canonical)
}

// Injector returns the configured output directory post-processor.
func (m *Module) Injector() InjectorService {
	return m.container.InjectorService()
}
