package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	xml2doc "github.com/alnah/go-xml2doc"
	"github.com/alnah/go-xml2doc/internal/assets"
	"github.com/alnah/go-xml2doc/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadXML            = errors.New("failed to read XML file")
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidExtension   = errors.New("file must have .xml extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrConverterInit      = errors.New("failed to initialize converter")
)

// FileToConvert represents a single file to process. OutputBase is the
// output path without extension; each format appends its own.
type FileToConvert struct {
	InputPath  string
	OutputBase string
}

// conversionParams groups parameters shared across the whole batch.
type conversionParams struct {
	formats  []string
	css      string
	page     *xml2doc.PageSettings
	footer   *xml2doc.Footer
	toc      *xml2doc.TOC
	nav      *xml2doc.Navigation
	backLink *xml2doc.BackLink
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Environment variable layer
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	// Load configuration
	cfg := config.DefaultConfig()
	configRef := flags.common.config
	if configRef == "" {
		configRef = envCfg.ConfigPath
	}
	if configRef != "" {
		var err error
		cfg, err = config.LoadConfig(configRef)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Apply env vars, then CLI flags on top (CLI wins)
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	// Resolve "auto" footer date once for the entire batch
	if cfg.Footer.Enabled && cfg.Footer.Date != "" {
		resolved, err := xml2doc.ResolveDate(cfg.Footer.Date, env.Now())
		if err != nil {
			return fmt.Errorf("invalid date format: %w", err)
		}
		cfg.Footer.Date = resolved
	}

	// Resolve input path
	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	// Resolve output directory
	outputDir := resolveOutputDir(flags.output, cfg)

	// Discover files to convert
	files, isDir, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no XML files found in %s", inputPath)
	}

	// Resolve extra CSS content
	cssContent, err := resolveExtraCSS(flags.assets.css, cfg)
	if err != nil {
		return err
	}

	// Bundle conversion parameters
	params := &conversionParams{
		formats:  resolveFormats(flags, cfg),
		css:      cssContent,
		page:     buildPageSettings(cfg),
		footer:   buildFooterData(cfg),
		toc:      buildTOCData(cfg),
		nav:      buildNavigationData(cfg),
		backLink: buildBackLinkData(cfg),
	}
	if params.page != nil {
		if err := params.page.Validate(); err != nil {
			return err
		}
	}
	if err := params.footer.Validate(); err != nil {
		return err
	}
	if err := params.toc.Validate(); err != nil {
		return err
	}
	if err := params.backLink.Validate(); err != nil {
		return err
	}

	// Build converter options from the merged config
	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}
	opts, err := buildConverterOptions(cfg, timeout)
	if err != nil {
		return err
	}

	// Create pool with resolved size
	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := xml2doc.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := env.NewPool(poolSize, opts...)
	defer pool.Close()

	// Convert files
	results := convertBatch(ctx, pool, files, params)

	// Write index page for directory conversions
	if isDir && (flags.outputMode.index || cfg.Output.IndexPage) {
		indexDir := outputDir
		if indexDir == "" {
			indexDir = inputPath
		}
		if err := writeIndexPage(indexDir, results); err != nil {
			fmt.Fprintf(env.Stderr, "FAILED index page: %v\n", err)
		}
	}

	// Print results
	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Document flags
	if flags.document.lang != "" {
		cfg.Document.Lang = flags.document.lang
	}
	if flags.document.markdownText {
		cfg.Document.MarkdownText = true
	}
	if flags.document.keepNamespaces {
		cfg.Document.KeepNamespaces = true
	}

	// Page flags
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
	}

	// Footer flags
	if flags.footer.position != "" {
		cfg.Footer.Position = flags.footer.position
		cfg.Footer.Enabled = true
	}
	if flags.footer.text != "" {
		cfg.Footer.Text = flags.footer.text
		cfg.Footer.Enabled = true
	}
	if flags.footer.date != "" {
		cfg.Footer.Date = flags.footer.date
		cfg.Footer.Enabled = true
	}
	if flags.footer.pageNumber {
		cfg.Footer.ShowPageNumber = true
		cfg.Footer.Enabled = true
	}

	// TOC flags
	if flags.toc.enabled {
		cfg.TOC.Enabled = true
	}
	if flags.toc.title != "" {
		cfg.TOC.Title = flags.toc.title
		cfg.TOC.Enabled = true
	}
	if flags.toc.maxDepth > 0 {
		cfg.TOC.MaxDepth = flags.toc.maxDepth
		cfg.TOC.Enabled = true
	}

	// Navigation flags
	if flags.nav.enabled {
		cfg.Navigation.Enabled = true
	}
	if flags.nav.title != "" {
		cfg.Navigation.Title = flags.nav.title
		cfg.Navigation.Enabled = true
	}

	// Back link flags
	if flags.backLink.url != "" {
		cfg.BackLink.URL = flags.backLink.url
		cfg.BackLink.Enabled = true
	}
	if flags.backLink.label != "" {
		cfg.BackLink.Label = flags.backLink.label
	}

	// Asset flags
	if flags.assets.style != "" {
		cfg.Style.Name = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Assets.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// Format flags
	if len(flags.formats) > 0 {
		cfg.Formats = flags.formats
	}
	if flags.outputMode.index {
		cfg.Output.IndexPage = true
	}

	// Disable flags
	if flags.footer.disabled {
		cfg.Footer.Enabled = false
	}
	if flags.toc.disabled {
		cfg.TOC.Enabled = false
	}
	if flags.nav.disabled {
		cfg.Navigation.Enabled = false
	}
	if flags.backLink.disabled {
		cfg.BackLink.Enabled = false
	}
}

// resolveFormats determines the output format list.
// Priority: --html-only > merged config > default (pdf). The --html flag
// adds HTML alongside whatever else is requested.
func resolveFormats(flags *convertFlags, cfg *config.Config) []string {
	if flags.outputMode.htmlOnly {
		return []string{"html"}
	}

	requested := cfg.Formats
	if len(requested) == 0 {
		requested = []string{"pdf"}
	}

	seen := make(map[string]bool, len(requested)+1)
	var formats []string
	add := func(name string) {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		formats = append(formats, name)
	}

	if flags.outputMode.html {
		add("html")
	}
	for _, f := range requested {
		add(f)
	}
	return formats
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// resolveTimeout parses the timeout flag, falling back to the env var.
// Returns 0 when neither is set (library default applies).
func resolveTimeout(flagTimeout string, envTimeout time.Duration) (time.Duration, error) {
	if flagTimeout == "" {
		return envTimeout, nil
	}
	d, err := time.ParseDuration(flagTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (use Go duration syntax, e.g. 30s, 2m)", ErrInvalidTimeout, flagTimeout)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagTimeout)
	}
	return d, nil
}

// resolveExtraCSS resolves extra CSS content from the flag or config.
// The flag names a file; the config carries raw CSS.
func resolveExtraCSS(cssFile string, cfg *config.Config) (string, error) {
	if cssFile != "" {
		content, err := os.ReadFile(cssFile) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		return string(content), nil
	}
	return cfg.Style.CSS, nil
}

// buildConverterOptions translates the merged config into library options.
func buildConverterOptions(cfg *config.Config, timeout time.Duration) ([]xml2doc.Option, error) {
	var opts []xml2doc.Option

	if timeout > 0 {
		opts = append(opts, xml2doc.WithTimeout(timeout))
	}
	if cfg.Style.Name != "" {
		opts = append(opts, xml2doc.WithStyle(cfg.Style.Name))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, xml2doc.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Assets.Template != "" {
		ts, err := loadTemplateSet(cfg.Assets.Template, cfg.Assets.BasePath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, xml2doc.WithTemplateSet(ts))
	}
	if cfg.Document.Lang != "" {
		opts = append(opts, xml2doc.WithLang(cfg.Document.Lang))
	}
	if cfg.Document.MarkdownText {
		opts = append(opts, xml2doc.WithMarkdownText())
	}
	if cfg.Document.KeepNamespaces {
		opts = append(opts, xml2doc.WithKeepNamespaces())
	}

	return opts, nil
}

// loadTemplateSet loads a named template set from the asset directory,
// falling back to embedded assets.
func loadTemplateSet(name, basePath string) (*xml2doc.TemplateSet, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", xml2doc.ErrInvalidAssetPath, basePath)
	}
	ts, err := resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", xml2doc.ErrTemplateSetNotFound, name)
	}
	return xml2doc.NewTemplateSet(ts.Name, ts.Document, ts.Navigation), nil
}

// discoverFiles finds all XML files to convert. The bool result reports
// whether the input path is a directory.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, bool, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, false, err
	}

	if !info.IsDir() {
		if err := validateXMLExtension(inputPath); err != nil {
			return nil, false, err
		}
		base := resolveOutputBase(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputBase: base}}, false, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".xml" {
			return nil
		}
		base := resolveOutputBase(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputBase: base})
		return nil
	})

	return files, true, err
}

// resolveOutputBase determines the extension-less output path for an
// XML file. Each requested format appends its own extension.
func resolveOutputBase(inputPath, outputDir, baseInputDir string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	// Explicit output file path (e.g. -o report.pdf with a single input)
	if ext := filepath.Ext(outputDir); ext != "" {
		return strings.TrimSuffix(outputDir, ext)
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base)
		}
	}

	return filepath.Join(outputDir, base)
}

// validateXMLExtension checks that the file has a .xml extension.
func validateXMLExtension(path string) error {
	if ext := filepath.Ext(path); ext != ".xml" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > xml2doc.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, xml2doc.MaxPoolSize)
	}
	return nil
}

// buildPageSettings creates xml2doc.PageSettings from config.
// Returns nil when nothing is set (library defaults apply).
func buildPageSettings(cfg *config.Config) *xml2doc.PageSettings {
	if cfg.Page.Size == "" && cfg.Page.Orientation == "" && cfg.Page.Margin == 0 {
		return nil
	}
	return &xml2doc.PageSettings{
		Size:        cfg.Page.Size,
		Orientation: cfg.Page.Orientation,
		Margin:      cfg.Page.Margin,
	}
}

// buildFooterData creates xml2doc.Footer from config.
func buildFooterData(cfg *config.Config) *xml2doc.Footer {
	if !cfg.Footer.Enabled {
		return nil
	}
	return &xml2doc.Footer{
		Position:       cfg.Footer.Position,
		ShowPageNumber: cfg.Footer.ShowPageNumber,
		Date:           cfg.Footer.Date,
		Text:           cfg.Footer.Text,
	}
}

// buildTOCData creates xml2doc.TOC from config.
func buildTOCData(cfg *config.Config) *xml2doc.TOC {
	if !cfg.TOC.Enabled {
		return nil
	}
	maxDepth := cfg.TOC.MaxDepth
	if maxDepth == 0 {
		maxDepth = xml2doc.DefaultTOCMaxDepth
	}
	return &xml2doc.TOC{
		Title:    cfg.TOC.Title,
		MaxDepth: maxDepth,
	}
}

// buildNavigationData creates xml2doc.Navigation from config.
func buildNavigationData(cfg *config.Config) *xml2doc.Navigation {
	if !cfg.Navigation.Enabled {
		return nil
	}
	return &xml2doc.Navigation{Title: cfg.Navigation.Title}
}

// buildBackLinkData creates xml2doc.BackLink from config.
func buildBackLinkData(cfg *config.Config) *xml2doc.BackLink {
	if !cfg.BackLink.Enabled {
		return nil
	}
	return &xml2doc.BackLink{
		URL:   cfg.BackLink.URL,
		Label: cfg.BackLink.Label,
	}
}
