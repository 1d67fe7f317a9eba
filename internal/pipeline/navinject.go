package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for template rendering.
var (
	ErrNavRender      = errors.New("navigation template rendering failed")
	ErrDocumentRender = errors.New("document template rendering failed")
)

// NavLink is a single entry in the navigation panel.
type NavLink struct {
	Href  string
	Label string
}

// NavData holds navigation panel content for injection into HTML.
type NavData struct {
	Title string
	Links []NavLink
}

// NavInjector defines the contract for navigation panel injection.
type NavInjector interface {
	InjectNav(ctx context.Context, htmlContent string, data *NavData) (string, error)
}

// NavInjection renders and injects a fixed navigation panel into HTML
// content.
type NavInjection struct {
	tmpl *template.Template
}

// NewNavInjection creates a NavInjection from template content.
// Returns error if the template cannot be parsed.
func NewNavInjection(tmplContent string) (*NavInjection, error) {
	tmpl, err := template.New("navigation").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing navigation template: %w", err)
	}

	return &NavInjection{tmpl: tmpl}, nil
}

// InjectNav renders the navigation template and injects it before </body>.
// If data is nil or has no links, returns htmlContent unchanged.
// Returns error if template rendering fails.
func (n *NavInjection) InjectNav(ctx context.Context, htmlContent string, data *NavData) (string, error) {
	if data == nil || len(data.Links) == 0 {
		return htmlContent, nil
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var buf bytes.Buffer
	if err := n.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNavRender, err)
	}

	navHTML := buf.String()
	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </body>
	if idx := strings.Index(lowerHTML, "</body>"); idx != -1 {
		return htmlContent[:idx] + navHTML + htmlContent[idx:], nil
	}

	// Fallback: append to end
	return htmlContent + navHTML, nil
}
