package render

import (
	"bytes"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// TextRenderer converts raw text content from XML elements into HTML.
type TextRenderer interface {
	Render(s string) string
}

// EscapeRenderer is the default: plain HTML escaping.
type EscapeRenderer struct{}

// Render escapes HTML special characters.
func (EscapeRenderer) Render(s string) string {
	return html.EscapeString(s)
}

// MarkdownRenderer renders text content as inline Markdown via goldmark.
// Useful for documents that carry Markdown in free-text fields (notes,
// descriptions). Falls back to escaping if goldmark rejects the input.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer creates a MarkdownRenderer with GFM extensions and
// syntax highlighting.
func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // external stylesheet control
				),
			),
		),
		goldmark.WithRendererOptions(
			ghtml.WithXHTML(),
			// WithUnsafe intentionally NOT used: raw HTML in text
			// content stays escaped.
		),
	)
	return &MarkdownRenderer{md: md}
}

// Render converts Markdown text to an inline HTML fragment.
// A single wrapping paragraph is unwrapped so the result fits inside
// span-level markup.
func (r *MarkdownRenderer) Render(s string) string {
	if strings.TrimSpace(s) == "" {
		return html.EscapeString(s)
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(s), &buf); err != nil {
		return html.EscapeString(s)
	}

	return unwrapParagraph(buf.String())
}

// unwrapParagraph strips a single outer <p>...</p> so single-paragraph
// Markdown renders inline. Multi-paragraph output is returned as-is.
func unwrapParagraph(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "<p>") || !strings.HasSuffix(trimmed, "</p>") {
		return trimmed
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "<p>"), "</p>")
	if strings.Contains(inner, "<p>") {
		return trimmed
	}
	return inner
}
