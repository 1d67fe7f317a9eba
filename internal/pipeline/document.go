package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// BackLinkData holds the optional back link shown above the document.
type BackLinkData struct {
	Href  string
	Label string
}

// DocumentData is the payload for the document template.
type DocumentData struct {
	Lang     string        // html lang attribute (default: "en")
	Title    string        // escaped by the template
	Meta     string        // "key: value | key: value" header line
	BackLink *BackLinkData // nil hides the link
	Body     template.HTML // rendered element tree, already escaped
}

// DocumentRenderer wraps rendered element HTML in a full document via an
// html/template.
type DocumentRenderer struct {
	tmpl *template.Template
}

// NewDocumentRenderer creates a DocumentRenderer from template content.
// Returns error if the template cannot be parsed.
func NewDocumentRenderer(tmplContent string) (*DocumentRenderer, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}

	return &DocumentRenderer{tmpl: tmpl}, nil
}

// Render executes the document template.
func (r *DocumentRenderer) Render(ctx context.Context, data *DocumentData) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if data.Lang == "" {
		data.Lang = "en"
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}
