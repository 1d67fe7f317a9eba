// Package pipeline implements the HTML assembly stages that run between
// the element renderer and the output formats:
//   - document template rendering (title, metadata, back link, body)
//   - CSS injection into the assembled document
//   - generated table of contents for documents without an explicit one
//   - navigation panel injection
//
// PDF generation is handled separately by the root xml2doc package using
// headless Chrome (go-rod). This separation keeps the pipeline focused on
// document structure and content, while PDF rendering handles page
// layout, margins, and browser-based rendering concerns.
package pipeline
