package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-hreflang"
	injectcmd "github.com/goliatone/go-hreflang/internal/commands/inject"
	"github.com/goliatone/go-hreflang/internal/injector"
)

const defaultSiteFile = "_config.yml"

var (
	moduleBuilder           = buildModule
	stdout        io.Writer = os.Stdout
)

type handlerSet struct {
	inject command.Commander[injectcmd.InjectSiteCommand]
	verify command.Commander[injectcmd.VerifySiteCommand]
}

type moduleResources struct {
	handlers handlerSet
	tags     func(hreflang.Page) hreflang.TagSet
}

type moduleOptions struct {
	ConfigPath  string
	PublicDir   string
	SourcesDir  string
	SiteURL     string
	Workers     int
	LogProvider string
	LogLevel    string
	LogFormat   string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("hreflang: %v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: hreflang <inject|verify|tags> [flags]")
	}

	switch args[0] {
	case "inject":
		return runInject(args[1:])
	case "verify":
		return runVerify(args[1:])
	case "tags":
		return runTags(args[1:])
	default:
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func runInject(args []string) error {
	fs := flag.NewFlagSet("hreflang-inject", flag.ContinueOnError)
	opts := bindModuleFlags(fs)
	dryRun := fs.Bool("dry-run", false, "Report changes without rewriting pages")
	var paths stringList
	fs.Var(&paths, "page", "Output file to process, relative to the public dir (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(*opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.handlers.inject == nil {
		return errors.New("inject handler not configured")
	}

	cmd := injectcmd.InjectSiteCommand{
		Paths:   paths,
		DryRun:  *dryRun,
		Workers: opts.Workers,
		ResultCallback: func(env injectcmd.ResultEnvelope) {
			logInjectResult(env)
		},
	}
	if err := resources.handlers.inject.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute inject command: %w", err)
	}
	return nil
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("hreflang-verify", flag.ContinueOnError)
	opts := bindModuleFlags(fs)
	var paths stringList
	fs.Var(&paths, "page", "Output file to check, relative to the public dir (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(*opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.handlers.verify == nil {
		return errors.New("verify handler not configured")
	}

	cmd := injectcmd.VerifySiteCommand{
		Paths: paths,
		ResultCallback: func(env injectcmd.ResultEnvelope) {
			logVerifyResult(env)
		},
	}
	if err := resources.handlers.verify.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute verify command: %w", err)
	}
	return nil
}

func runTags(args []string) error {
	fs := flag.NewFlagSet("hreflang-tags", flag.ContinueOnError)
	opts := bindModuleFlags(fs)
	pagePath := fs.String("path", "", "Site relative output path, e.g. zh-CN/2025/10/post/index.html")
	lang := fs.String("lang", "", "Rendering language (defaults to the default language)")
	canonicalLang := fs.String("canonical-lang", "", "Declared canonical language")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*pagePath) == "" {
		return errors.New("tags: -path is required")
	}

	resources, err := moduleBuilder(*opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.tags == nil {
		return errors.New("tag builder not configured")
	}

	tags := resources.tags(hreflang.Page{
		Path:              strings.TrimLeft(strings.TrimSpace(*pagePath), "/"),
		Language:          strings.TrimSpace(*lang),
		CanonicalLanguage: strings.TrimSpace(*canonicalLang),
	})
	_, err = fmt.Fprintln(stdout, tags.Markup(""))
	return err
}

func bindModuleFlags(fs *flag.FlagSet) *moduleOptions {
	opts := &moduleOptions{}
	fs.StringVar(&opts.ConfigPath, "config", "", "Site config file with url and canonical_multilang keys (defaults to _config.yml when present)")
	fs.StringVar(&opts.PublicDir, "public", "", "Rendered output directory (defaults to public)")
	fs.StringVar(&opts.SourcesDir, "sources", "", "Markdown sources carrying lang/canonical_lang front matter")
	fs.StringVar(&opts.SiteURL, "site-url", "", "Public site URL, overrides the config file")
	fs.IntVar(&opts.Workers, "workers", 0, "Concurrent page workers (0 uses one per CPU)")
	fs.StringVar(&opts.LogProvider, "log-provider", "", "Logger provider: console or gologger")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Minimum log level")
	fs.StringVar(&opts.LogFormat, "log-format", "", "Log format: text or json for console, json, console or pretty for gologger")
	return opts
}

func buildModule(opts moduleOptions) (*moduleResources, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}
	module, err := hreflang.New(cfg)
	if err != nil {
		return nil, err
	}
	container := module.Container()
	return &moduleResources{
		handlers: handlerSet{
			inject: container.InjectSiteHandler(),
			verify: container.VerifySiteHandler(),
		},
		tags: module.BuildTags,
	}, nil
}

func resolveConfig(opts moduleOptions) (hreflang.Config, error) {
	cfg := hreflang.DefaultConfig()

	configPath := strings.TrimSpace(opts.ConfigPath)
	if configPath == "" {
		if _, err := os.Stat(defaultSiteFile); err == nil {
			configPath = defaultSiteFile
		}
	}
	if configPath != "" {
		file, err := hreflang.LoadSiteFile(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = cfg.ApplySiteFile(file)
	}

	if v := strings.TrimSpace(opts.SiteURL); v != "" {
		cfg.SiteURL = v
	}
	if v := strings.TrimSpace(opts.PublicDir); v != "" {
		cfg.Injector.OutputDir = v
	}
	if v := strings.TrimSpace(opts.SourcesDir); v != "" {
		cfg.Sources.Dir = v
	}
	if opts.Workers > 0 {
		cfg.Injector.Workers = opts.Workers
	}
	if v := strings.TrimSpace(opts.LogProvider); v != "" {
		cfg.Logging.Provider = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(opts.LogFormat); v != "" {
		cfg.Logging.Format = v
	}
	return cfg, nil
}

func logInjectResult(env injectcmd.ResultEnvelope) {
	operation, _ := env.Metadata["operation"].(string)
	if reason, ok := env.Metadata["skipped"].(string); ok {
		log.Printf("module=hreflang operation=%s skipped=%s", operation, reason)
		return
	}
	result := env.Inject
	if result == nil {
		log.Printf("module=hreflang operation=%s", operation)
		return
	}
	for _, page := range result.Pages {
		switch {
		case page.Err != nil:
			log.Printf("module=hreflang operation=%s page=%s error=%q", operation, page.Path, page.Err)
		case !page.Injected && page.Reason != "":
			log.Printf("module=hreflang operation=%s page=%s skipped=%s", operation, page.Path, page.Reason)
		}
	}
	log.Printf("module=hreflang operation=%s summary run_id=%s processed=%d injected=%d skipped=%d errors=%d dry_run=%t duration=%s",
		operation, result.RunID, result.Processed, result.Injected, result.Skipped, len(result.Errors), result.DryRun, result.Duration)
}

func logVerifyResult(env injectcmd.ResultEnvelope) {
	operation, _ := env.Metadata["operation"].(string)
	if reason, ok := env.Metadata["skipped"].(string); ok {
		log.Printf("module=hreflang operation=%s skipped=%s", operation, reason)
		return
	}
	result := env.Verify
	if result == nil {
		log.Printf("module=hreflang operation=%s", operation)
		return
	}
	for _, issue := range result.Issues {
		log.Printf("module=hreflang operation=%s issue %s", operation, issueLine(issue))
	}
	log.Printf("module=hreflang operation=%s summary checked=%d issues=%d", operation, result.Checked, len(result.Issues))
}

func issueLine(issue injector.Issue) string {
	return fmt.Sprintf("page=%s code=%s message=%q", issue.Path, issue.Code, issue.Message)
}

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			*s = append(*s, trimmed)
		}
	}
	return nil
}
