// Package render turns a parsed XML tree into HTML body markup using a
// registry of per-element-name processor functions. Unknown elements fall
// back to a heuristic processor, so conversion never fails on unexpected
// structure.
package render

import (
	"html"
	"strings"

	"github.com/alnah/go-xml2doc/internal/xmltree"
)

// ProcessorFunc renders a single XML element to an HTML fragment.
type ProcessorFunc func(ctx *Context, n *xmltree.Node) string

// Context carries the registry and text renderer through a traversal.
// Processors use it to recurse into children and to render text content.
type Context struct {
	reg  *Registry
	text TextRenderer
}

// Process renders a single element via its registered processor.
func (c *Context) Process(n *xmltree.Node) string {
	return c.reg.process(c, n)
}

// ProcessChildren renders all direct children in document order.
func (c *Context) ProcessChildren(n *xmltree.Node) string {
	var b strings.Builder
	for _, child := range n.Children {
		b.WriteString(c.reg.process(c, child))
	}
	return b.String()
}

// RenderText renders flow text content (sentences, cell content).
// Depending on converter options this is plain HTML escaping or inline
// Markdown rendering.
func (c *Context) RenderText(s string) string {
	return c.text.Render(s)
}

// Registry maps element names to processor functions.
type Registry struct {
	processors     map[string]ProcessorFunc
	stats          map[string]int
	keepNamespaces bool
}

// NewRegistry creates a Registry pre-populated with the default processors.
func NewRegistry() *Registry {
	r := &Registry{
		processors: make(map[string]ProcessorFunc),
		stats:      make(map[string]int),
	}
	for name, fn := range DefaultProcessors() {
		r.Register(name, fn)
	}
	return r
}

// Register installs a processor for an element name, replacing any
// previous registration.
func (r *Registry) Register(name string, fn ProcessorFunc) {
	r.processors[name] = fn
}

// KeepNamespaces makes lookups use the namespace-qualified name
// ("space:Tag") for namespaced elements instead of the local name.
func (r *Registry) KeepNamespaces(keep bool) {
	r.keepNamespaces = keep
}

// Lookup returns the processor for an element name, falling back to the
// default heuristic processor.
func (r *Registry) Lookup(name string) ProcessorFunc {
	if fn, ok := r.processors[name]; ok {
		return fn
	}
	return fallbackProcessor
}

// Stats returns per-element processing counts for the analyze report.
func (r *Registry) Stats() map[string]int {
	out := make(map[string]int, len(r.stats))
	for k, v := range r.stats {
		out[k] = v
	}
	return out
}

// NewContext creates a Context bound to this registry.
// If text is nil, plain HTML escaping is used.
func (r *Registry) NewContext(text TextRenderer) *Context {
	if text == nil {
		text = EscapeRenderer{}
	}
	return &Context{reg: r, text: text}
}

// keyFor returns the lookup name for a node.
func (r *Registry) keyFor(n *xmltree.Node) string {
	if r.keepNamespaces && n.Space != "" {
		return n.Space + ":" + n.Tag
	}
	return n.Tag
}

func (r *Registry) process(ctx *Context, n *xmltree.Node) string {
	key := r.keyFor(n)
	r.stats[key]++
	return r.Lookup(key)(ctx, n)
}

// fallbackProcessor handles elements with no registered processor.
// It guesses the HTML shape from the element name.
func fallbackProcessor(ctx *Context, n *xmltree.Node) string {
	tag := n.Tag
	class := strings.ToLower(tag)

	switch {
	case strings.Contains(tag, "Title"), strings.Contains(tag, "Caption"):
		return `<div class="` + class + `">` + html.EscapeString(n.FlatText()) + `</div>`
	case strings.Contains(tag, "Sentence"), strings.Contains(tag, "Text"):
		return `<span class="` + class + `">` + ctx.RenderText(n.FlatText()) + `</span>`
	case strings.Contains(tag, "Item"), strings.Contains(tag, "List"):
		return `<li class="` + class + `">` + ctx.RenderText(n.FlatText()) + `</li>`
	case strings.Contains(tag, "Table"):
		return fallbackTable(ctx, n)
	default:
		return `<div class="` + class + `">` + ctx.ProcessChildren(n) + `</div>`
	}
}

// fallbackTable renders an unknown table-like element: direct children as
// rows, grandchildren as cells.
func fallbackTable(ctx *Context, n *xmltree.Node) string {
	var b strings.Builder
	b.WriteString(`<table class="table">`)
	for _, row := range n.Children {
		b.WriteString("<tr>")
		if len(row.Children) == 0 {
			b.WriteString("<td>" + ctx.RenderText(row.FlatText()) + "</td>")
		}
		for _, col := range row.Children {
			b.WriteString("<td>" + ctx.RenderText(col.FlatText()) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}
