package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds document rendering flags.
type documentFlags struct {
	lang           string
	markdownText   bool
	keepNamespaces bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// footerFlags holds footer-related flags.
type footerFlags struct {
	position   string
	text       string
	date       string
	pageNumber bool
	disabled   bool
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	title    string
	maxDepth int
	enabled  bool
	disabled bool
}

// navFlags holds navigation panel flags.
type navFlags struct {
	title    string
	enabled  bool
	disabled bool
}

// backLinkFlags holds back-to-index link flags.
type backLinkFlags struct {
	url      string
	label    string
	disabled bool
}

// assetFlags holds asset-related flags (CSS, templates, custom asset path).
type assetFlags struct {
	style     string // Style name, file path, or inline CSS
	css       string // Extra CSS file appended after the style
	template  string // Template set name
	assetPath string // Override asset directory
}

// outputFlags holds output mode flags.
type outputFlags struct {
	html     bool // Output HTML alongside other formats
	htmlOnly bool // Output HTML only, skip everything else
	index    bool // Write an index page for directory conversion
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	formats    []string
	document   documentFlags
	page       pageFlags
	footer     footerFlags
	toc        tocFlags
	nav        navFlags
	backLink   backLinkFlags
	assets     assetFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds document rendering flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.lang, "lang", "", "html lang attribute (default: en)")
	fs.BoolVar(&f.markdownText, "markdown-text", false, "render element text as inline Markdown")
	fs.BoolVar(&f.keepNamespaces, "keep-namespaces", false, "keep namespace prefixes on element names")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addFooterFlags adds footer flags to a FlagSet.
func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.StringVar(&f.position, "footer-position", "", "footer position: left, center, right")
	fs.StringVar(&f.text, "footer-text", "", "custom footer text")
	fs.StringVar(&f.date, "footer-date", "", "footer date: \"auto\", \"auto:FORMAT\", or literal")
	fs.BoolVar(&f.pageNumber, "footer-page-number", false, "show page numbers in footer")
	fs.BoolVar(&f.disabled, "no-footer", false, "disable footer")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "generate a table of contents")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.maxDepth, "toc-depth", 0, "max structural depth for TOC (1-3, default: 3)")
	fs.BoolVar(&f.disabled, "no-toc", false, "disable table of contents")
}

// addNavFlags adds navigation panel flags to a FlagSet.
func addNavFlags(fs *flag.FlagSet, f *navFlags) {
	fs.BoolVar(&f.enabled, "nav", false, "add a fixed navigation panel (screen only)")
	fs.StringVar(&f.title, "nav-title", "", "navigation panel heading")
	fs.BoolVar(&f.disabled, "no-nav", false, "disable navigation panel")
}

// addBackLinkFlags adds back link flags to a FlagSet.
func addBackLinkFlags(fs *flag.FlagSet, f *backLinkFlags) {
	fs.StringVar(&f.url, "back-link", "", "back link URL shown above the document")
	fs.StringVar(&f.label, "back-link-label", "", "back link label (default: Back to Index)")
	fs.BoolVar(&f.disabled, "no-back-link", false, "disable back link")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "style name, CSS file path, or inline CSS")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the style")
	fs.StringVar(&f.template, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "output HTML alongside the requested formats")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip all other formats")
	fs.BoolVar(&f.index, "index", false, "write an index page for directory conversion")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringSliceVarP(&f.formats, "format", "f", nil, "output formats: html, pdf, markdown, docx")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)
	addTOCFlags(fs, &f.toc)
	addNavFlags(fs, &f.nav)
	addBackLinkFlags(fs, &f.backLink)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
