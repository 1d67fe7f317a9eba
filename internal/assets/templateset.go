package assets

// TemplateSet holds the HTML templates for document generation.
// A template set contains the document shell and the navigation panel
// that work together.
type TemplateSet struct {
	Name       string // Identifier (name or directory path)
	Document   string // Full-page document template HTML content
	Navigation string // Navigation panel template HTML content
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"
