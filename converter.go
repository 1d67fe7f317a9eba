package xml2doc

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/alnah/go-xml2doc/internal/assets"
	"github.com/alnah/go-xml2doc/internal/fileutil"
	"github.com/alnah/go-xml2doc/internal/pipeline"
	"github.com/alnah/go-xml2doc/internal/render"
	"github.com/alnah/go-xml2doc/internal/xmltree"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.CSSInjector = (*pipeline.CSSInjection)(nil)
	_ pipeline.TOCInjector = (*pipeline.TOCInjection)(nil)
	_ pipeline.NavInjector = (*pipeline.NavInjection)(nil)
	_ pdfConverter         = (*rodConverter)(nil)
	_ pdfRenderer          = (*rodRenderer)(nil)
)

// Converter orchestrates the XML-to-document pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close()
// when done.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	registry          *render.Registry
	textRenderer      render.TextRenderer
	cssInjector       pipeline.CSSInjector
	tocInjector       pipeline.TOCInjector
	navInjector       pipeline.NavInjector
	docRenderer       *pipeline.DocumentRenderer
	pdfConverter      pdfConverter
	formats           map[string]*registeredFormat
}

// publicToInternalAdapter wraps public AssetLoader to internal assets.AssetLoader.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *publicToInternalAdapter) LoadTemplateSet(name string) (*assets.TemplateSet, error) {
	ts, err := a.pub.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return &assets.TemplateSet{
		Name:       ts.Name,
		Document:   ts.Document,
		Navigation: ts.Navigation,
	}, nil
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle,
// WithProcessor). Returns error if asset loading or template parsing
// fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout},
		assetLoader: assets.NewEmbeddedLoader(),
		cssInjector: &pipeline.CSSInjection{},
		tocInjector: pipeline.NewTOCInjection(),
	}

	for _, opt := range opts {
		opt(c)
	}

	// Handle WithAssetPath: resolve to internal loader
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	// Resolve style input (name, path, or CSS content) to CSS content
	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	// Load template set if not already configured via WithTemplateSet
	var templateSet *assets.TemplateSet
	if c.cfg.templateSet != nil {
		templateSet = &assets.TemplateSet{
			Name:       c.cfg.templateSet.Name,
			Document:   c.cfg.templateSet.Document,
			Navigation: c.cfg.templateSet.Navigation,
		}
	} else {
		var err error
		templateSet, err = c.assetLoader.LoadTemplateSet(assets.DefaultTemplateSetName)
		if err != nil {
			return nil, fmt.Errorf("loading default template set: %w", convertAssetError(err))
		}
	}

	var err error
	if c.docRenderer == nil {
		c.docRenderer, err = pipeline.NewDocumentRenderer(templateSet.Document)
		if err != nil {
			return nil, fmt.Errorf("initializing document renderer: %w", err)
		}
	}
	if c.navInjector == nil {
		navInjection, err := pipeline.NewNavInjection(templateSet.Navigation)
		if err != nil {
			return nil, fmt.Errorf("initializing navigation injector: %w", err)
		}
		c.navInjector = navInjection
	}

	// Build the element registry with built-in and custom processors
	c.registry = render.NewRegistry()
	if c.cfg.keepNamespaces {
		c.registry.KeepNamespaces(true)
	}
	for name, p := range c.cfg.processors {
		c.registry.Register(name, adaptProcessor(p))
	}

	if c.cfg.markdownText {
		c.textRenderer = render.NewMarkdownRenderer()
	} else {
		c.textRenderer = render.EscapeRenderer{}
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	c.registerBuiltinFormats()

	return c, nil
}

// adaptProcessor wraps a public Processor into the registry's callback.
func adaptProcessor(p Processor) render.ProcessorFunc {
	return func(rc *render.Context, n *xmltree.Node) string {
		attrs := make(map[string]string, len(n.Attrs))
		for _, a := range n.Attrs {
			attrs[a.Name] = a.Value
		}
		return p(Element{
			Tag:      n.Tag,
			Attrs:    attrs,
			Text:     n.FlatText(),
			Children: rc.ProcessChildren(n),
		})
	}
}

// artifact holds the intermediate products of one conversion.
type artifact struct {
	root  *xmltree.Node
	html  string
	title string
}

// Convert runs the full pipeline and returns the result containing HTML
// and PDF. The context is used for cancellation and timeout.
// If input.HTMLOnly is true, PDF generation is skipped.
// Recovers from internal panics to prevent crashes from propagating to
// callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	art, err := c.renderDocument(ctx, input)
	if err != nil {
		return nil, err
	}

	res := &Result{
		HTML:  []byte(art.html),
		Title: art.title,
	}

	if input.HTMLOnly {
		return res, nil
	}

	pdfBytes, err := c.toPDF(ctx, art.html, input)
	if err != nil {
		return nil, err
	}

	res.PDF = pdfBytes
	return res, nil
}

// renderDocument parses the XML and assembles the final HTML document.
func (c *Converter) renderDocument(ctx context.Context, input Input) (*artifact, error) {
	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	root, err := xmltree.Parse(input.XML)
	if err != nil {
		if errors.Is(err, xmltree.ErrEmptyInput) {
			return nil, ErrEmptyXML
		}
		return nil, fmt.Errorf("%w: %v", ErrXMLParse, err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Render the element tree
	rctx := c.registry.NewContext(c.textRenderer)
	body := rctx.Process(root)
	title := render.DocumentTitle(root)
	meta := render.DocumentMeta(root)

	// Wrap in the document template
	var backLink *pipeline.BackLinkData
	if input.BackLink != nil {
		label := input.BackLink.Label
		if label == "" {
			label = "Back to Index"
		}
		backLink = &pipeline.BackLinkData{Href: input.BackLink.URL, Label: label}
	}
	htmlContent, err := c.docRenderer.Render(ctx, &pipeline.DocumentData{
		Lang:     c.cfg.lang,
		Title:    title,
		Meta:     meta,
		BackLink: backLink,
		Body:     template.HTML(body), // #nosec G203 -- produced by the escaping renderer
	})
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	// Inject CSS (style first, user CSS last so it can override)
	cssContent := c.cfg.resolvedStyle
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Inject generated TOC (explicit TOC elements take precedence)
	htmlContent, err = c.tocInjector.InjectTOC(ctx, htmlContent, toTOCData(input.TOC))
	if err != nil {
		return nil, fmt.Errorf("injecting TOC: %w", err)
	}

	// Inject navigation panel (if requested)
	htmlContent, err = c.navInjector.InjectNav(ctx, htmlContent, toNavData(input.Navigation, root))
	if err != nil {
		return nil, fmt.Errorf("injecting navigation: %w", err)
	}

	return &artifact{root: root, html: htmlContent, title: title}, nil
}

// toPDF renders assembled HTML to PDF with footer and page settings.
func (c *Converter) toPDF(ctx context.Context, htmlContent string, input Input) ([]byte, error) {
	footer, err := resolveFooter(input.Footer)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{
		Footer: footer,
		Page:   input.Page,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdfBytes, nil
}

// resolveFooter expands "auto" dates in the footer configuration.
func resolveFooter(f *Footer) (*Footer, error) {
	if f == nil {
		return nil, nil
	}
	date, err := ResolveDate(f.Date, time.Now())
	if err != nil {
		return nil, err
	}
	resolved := *f
	resolved.Date = date
	return &resolved, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to
// CSS content. Called during NewConverter() after options are applied
// and the asset loader is configured.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		css, err := c.assetLoader.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			return fmt.Errorf("loading default style: %w", convertAssetError(err))
		}
		c.cfg.resolvedStyle = css
		return nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	// Style name -> use asset loader
	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input
// manually. CLI users have their input validated earlier at config load
// time. Both paths converge here.
func (c *Converter) validateInput(input Input) error {
	if len(input.XML) == 0 {
		return ErrEmptyXML
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if err := input.Footer.Validate(); err != nil {
		return err
	}
	if err := input.TOC.Validate(); err != nil {
		return err
	}
	if err := input.BackLink.Validate(); err != nil {
		return err
	}
	return nil
}

// toTOCData converts the public TOC type to internal pipeline.TOCData.
func toTOCData(t *TOC) *pipeline.TOCData {
	if t == nil {
		return nil
	}
	title := t.Title
	if title == "" {
		title = "Contents"
	}
	maxDepth := t.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return &pipeline.TOCData{
		Title:    title,
		MaxDepth: maxDepth,
	}
}

// toNavData extracts navigation links for the panel.
func toNavData(n *Navigation, root *xmltree.Node) *pipeline.NavData {
	if n == nil {
		return nil
	}
	items := render.NavItems(root)
	links := make([]pipeline.NavLink, len(items))
	for i, item := range items {
		links[i] = pipeline.NavLink{Href: item.Href, Label: item.Label}
	}
	title := n.Title
	if title == "" {
		title = "Contents"
	}
	return &pipeline.NavData{Title: title, Links: links}
}
