package xml2doc

import (
	"context"
	"fmt"
	"sort"
	"strings"

	htmltomd "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/alnah/go-xml2doc/internal/docx"
	"github.com/alnah/go-xml2doc/internal/render"
	"github.com/alnah/go-xml2doc/internal/xmltree"
)

// Format converts a document to one output encoding. Built-in formats
// cover html, pdf, markdown, and docx; register custom formats with
// RegisterFormat.
type Format interface {
	// Name is the registry key, e.g. "pdf".
	Name() string

	// Extension is the output file extension without the dot, e.g. "pdf".
	Extension() string

	// Convert produces the encoded output for the given input.
	Convert(ctx context.Context, c *Converter, input Input) ([]byte, error)
}

// Compile-time interface checks for the built-in formats.
var (
	_ Format = htmlFormat{}
	_ Format = pdfFormat{}
	_ Format = markdownFormat{}
	_ Format = docxFormat{}
)

// registerBuiltinFormats fills the converter's format registry.
func (c *Converter) registerBuiltinFormats() {
	c.formats = make(map[string]*registeredFormat)
	for _, f := range []Format{htmlFormat{}, pdfFormat{}, markdownFormat{}, docxFormat{}} {
		c.formats[f.Name()] = &registeredFormat{f}
	}
}

// registeredFormat wraps a Format for the registry. The indirection keeps
// room for per-format state without changing the public interface.
type registeredFormat struct {
	Format
}

// RegisterFormat adds a custom output format, replacing any existing
// format with the same name.
func (c *Converter) RegisterFormat(f Format) {
	c.formats[f.Name()] = &registeredFormat{f}
}

// Formats returns the names of all registered output formats, sorted.
func (c *Converter) Formats() []string {
	names := make([]string, 0, len(c.formats))
	for name := range c.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatExtension returns the file extension for a format name.
// Returns ErrUnknownFormat for unregistered names.
func (c *Converter) FormatExtension(name string) (string, error) {
	f, ok := c.formats[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f.Extension(), nil
}

// ConvertTo runs the pipeline and encodes the result in the named format.
func (c *Converter) ConvertTo(ctx context.Context, input Input, formatName string) ([]byte, error) {
	f, ok := c.formats[strings.ToLower(formatName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, formatName)
	}
	return f.Convert(ctx, c, input)
}

// htmlFormat emits the assembled HTML document.
type htmlFormat struct{}

func (htmlFormat) Name() string      { return "html" }
func (htmlFormat) Extension() string { return "html" }

func (htmlFormat) Convert(ctx context.Context, c *Converter, input Input) ([]byte, error) {
	art, err := c.renderDocument(ctx, input)
	if err != nil {
		return nil, err
	}
	return []byte(art.html), nil
}

// pdfFormat renders the assembled HTML to PDF via headless Chrome.
type pdfFormat struct{}

func (pdfFormat) Name() string      { return "pdf" }
func (pdfFormat) Extension() string { return "pdf" }

func (pdfFormat) Convert(ctx context.Context, c *Converter, input Input) ([]byte, error) {
	art, err := c.renderDocument(ctx, input)
	if err != nil {
		return nil, err
	}
	return c.toPDF(ctx, art.html, input)
}

// markdownFormat converts the assembled HTML to Markdown.
type markdownFormat struct{}

func (markdownFormat) Name() string      { return "markdown" }
func (markdownFormat) Extension() string { return "md" }

func (markdownFormat) Convert(ctx context.Context, c *Converter, input Input) ([]byte, error) {
	art, err := c.renderDocument(ctx, input)
	if err != nil {
		return nil, err
	}
	conv := htmltomd.NewConverter("", true, nil)
	md, err := conv.ConvertString(art.html)
	if err != nil {
		return nil, fmt.Errorf("converting to markdown: %w", err)
	}
	return []byte(md), nil
}

// docxFormat builds a Word document from the element tree directly,
// skipping the HTML stage. Headings follow the structural hierarchy,
// sentences become paragraphs, and tables keep their cell text.
type docxFormat struct{}

func (docxFormat) Name() string      { return "docx" }
func (docxFormat) Extension() string { return "docx" }

func (docxFormat) Convert(ctx context.Context, c *Converter, input Input) ([]byte, error) {
	art, err := c.renderDocument(ctx, input)
	if err != nil {
		return nil, err
	}

	doc := &docx.Document{}
	if art.title != "" {
		doc.Add(docx.Heading{Level: 1, Text: art.title})
	}
	collectDocxBlocks(art.root, doc)

	return docx.Marshal(doc)
}

// headingLevels maps structural elements to Word heading levels.
var headingLevels = map[string]struct {
	titleTag string
	level    int
}{
	"Chapter": {"ChapterTitle", 1},
	"Section": {"SectionTitle", 2},
	"Article": {"ArticleTitle", 3},
	"chapter": {"title", 1},
	"section": {"title", 2},
	"article": {"title", 3},
}

// collectDocxBlocks walks the tree and appends blocks in document order.
func collectDocxBlocks(root *xmltree.Node, doc *docx.Document) {
	root.Walk(func(n *xmltree.Node) bool {
		if h, ok := headingLevels[n.Tag]; ok {
			if title := strings.TrimSpace(n.Find(h.titleTag).FlatText()); title != "" {
				doc.Add(docx.Heading{Level: h.level, Text: title})
			}
			return true
		}

		switch n.Tag {
		case "Paragraph", "paragraph", "EnactStatement":
			if text := paragraphText(n); text != "" {
				doc.Add(docx.Paragraph{Text: text})
			}
			return false
		case "TableStruct":
			if rows := tableRows(n.Find("Table")); len(rows) > 0 {
				if title := strings.TrimSpace(n.Find("TableStructTitle").FlatText()); title != "" {
					doc.Add(docx.Paragraph{Text: title})
				}
				doc.Add(docx.Table{Rows: rows})
			}
			return false
		}
		return true
	})
}

// paragraphText flattens a paragraph node into one line of text.
func paragraphText(n *xmltree.Node) string {
	var parts []string
	for _, s := range n.FindAllDeep("Sentence") {
		if t := strings.TrimSpace(s.FlatText()); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		if t := strings.TrimSpace(n.FlatText()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// tableRows extracts cell text from a Table element.
func tableRows(table *xmltree.Node) [][]string {
	if table == nil {
		return nil
	}
	var rows [][]string
	for _, tr := range table.FindAll("TableRow") {
		var cells []string
		for _, td := range tr.FindAll("TableColumn") {
			cells = append(cells, strings.TrimSpace(td.FlatText()))
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// Analyze parses XML content and reports its structure: which elements
// occur, how they nest, which carry attributes, and which hold text
// versus children. Useful before writing custom processors.
func (c *Converter) Analyze(xmlContent []byte) (*Structure, error) {
	if len(xmlContent) == 0 {
		return nil, ErrEmptyXML
	}
	root, err := xmltree.Parse(xmlContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrXMLParse, err)
	}
	s := render.Analyze(root)
	return &Structure{
		Elements:          s.Elements,
		Counts:            s.Counts,
		Hierarchy:         s.Hierarchy,
		Attributes:        s.Attributes,
		TextElements:      s.TextElements,
		ContainerElements: s.ContainerElements,
	}, nil
}

// Structure describes the shape of an XML document.
type Structure struct {
	Elements          []string            // all element names, sorted
	Counts            map[string]int      // occurrences per element
	Hierarchy         map[string][]string // parent -> sorted child names
	Attributes        map[string][]string // element -> sorted attribute names
	TextElements      []string            // elements with direct text content
	ContainerElements []string            // elements with child elements
}
