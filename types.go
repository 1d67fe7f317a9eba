package xml2doc

import (
	"fmt"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Footer configures the PDF footer.
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	Date           string // literal text, or "auto" / "auto:FORMAT"
	Text           string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// TOC depth bounds: 1 covers chapters only, 3 goes down to articles.
const (
	MinTOCDepth        = 1
	MaxTOCDepth        = 3
	DefaultTOCMaxDepth = 3
)

// TOC requests a generated table of contents. Documents carrying an
// explicit TOC element keep it; the generated one only fills the gap.
type TOC struct {
	Title    string // heading above the entries (default: "Contents")
	MaxDepth int    // deepest structural level (default: 3)
}

// Validate checks that TOC settings are valid.
// Returns nil if t is nil (nil means no generated TOC).
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	if t.MaxDepth == 0 {
		return nil
	}
	if t.MaxDepth < MinTOCDepth || t.MaxDepth > MaxTOCDepth {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidTOCDepth, t.MaxDepth, MinTOCDepth, MaxTOCDepth)
	}
	return nil
}

// Navigation requests a fixed navigation panel linking to chapters,
// sections, and articles. Hidden in print output by the stylesheet.
type Navigation struct {
	Title string // panel heading (default: "Contents")
}

// BackLink adds a link above the document, typically to an index page.
type BackLink struct {
	URL   string
	Label string // default: "Back to Index"
}

// Validate checks that the back link has a target.
// Returns nil if b is nil (nil means no back link).
func (b *BackLink) Validate() error {
	if b == nil {
		return nil
	}
	if b.URL == "" {
		return fmt.Errorf("%w: URL cannot be empty", ErrInvalidBackLink)
	}
	return nil
}

// Input contains conversion parameters.
type Input struct {
	XML        []byte        // XML content (required)
	SourceName string        // source identifier for index pages (optional)
	CSS        string        // extra CSS appended after the style (optional)
	TOC        *TOC          // generated TOC config (optional, nil = none)
	Navigation *Navigation   // navigation panel config (optional)
	BackLink   *BackLink     // back link config (optional)
	Page       *PageSettings // page settings (optional, nil = defaults)
	Footer     *Footer       // footer config (optional)
	HTMLOnly   bool          // skip PDF generation
}

// Result holds the conversion outputs.
type Result struct {
	HTML  []byte
	PDF   []byte // nil when HTMLOnly is set
	Title string // detected document title
}

// Element is the read-only view of an XML element handed to custom
// processors. Children holds the HTML already rendered from the child
// elements, so processors compose without walking the tree themselves.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Text     string // flattened text content
	Children string // HTML rendered from child elements
}

// Processor renders one element to an HTML fragment. The returned string
// is inserted verbatim, so processors must escape text content.
type Processor func(e Element) string

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	styleInput     string
	resolvedStyle  string
	assetPath      string
	templateSet    *TemplateSet
	lang           string
	markdownText   bool
	keepNamespaces bool
	processors     map[string]Processor
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("xml2doc: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the document style. Accepts a built-in style name
// ("default", "compact"), a path to a CSS file, or raw CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory for custom styles and templates.
// Assets found there take precedence over the embedded defaults.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader (e.g., S3, database).
// Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithTemplateSet sets the document and navigation templates directly,
// bypassing asset loading.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(c *Converter) {
		c.cfg.templateSet = ts
	}
}

// WithLang sets the HTML lang attribute (default: "en").
func WithLang(lang string) Option {
	return func(c *Converter) {
		c.cfg.lang = lang
	}
}

// WithProcessor registers a custom processor for the given element name,
// overriding the built-in one if present. The name is matched after
// namespace stripping unless WithKeepNamespaces is set.
func WithProcessor(name string, p Processor) Option {
	return func(c *Converter) {
		if c.cfg.processors == nil {
			c.cfg.processors = make(map[string]Processor)
		}
		c.cfg.processors[name] = p
	}
}

// WithMarkdownText renders element text content as inline Markdown
// instead of plain escaped text. Useful for documents whose free-text
// fields carry Markdown.
func WithMarkdownText() Option {
	return func(c *Converter) {
		c.cfg.markdownText = true
	}
}

// WithKeepNamespaces matches processors on "namespace:Tag" keys instead
// of stripping namespaces from element names.
func WithKeepNamespaces() Option {
	return func(c *Converter) {
		c.cfg.keepNamespaces = true
	}
}
