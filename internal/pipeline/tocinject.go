package pipeline

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// TOCData holds generated-TOC configuration.
type TOCData struct {
	Title    string
	MaxDepth int // deepest structural level to include: 1=chapter, 2=section, 3=article (default 3)
}

// TOCInjector defines the contract for TOC injection into HTML.
type TOCInjector interface {
	InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error)
}

// anchorInfo represents a structural anchor extracted from rendered HTML.
type anchorInfo struct {
	Level int    // 1=chapter, 2=section, 3=article
	ID    string // anchor ID
	Text  string // title text content
}

// anchorPattern matches the structural containers the element renderer
// emits, e.g. <div class="chapter" id="chapter-1"><div class="chapter-title">...
// Articles may carry a caption div between the container and its title.
// Captures: 1=kind, 2=id, 3=inner title HTML.
var anchorPattern = regexp.MustCompile(`(?is)<div class="(chapter|section|article)" id="([^"]+)">(?:<div class="article-caption">.*?</div>)?<div class="(?:chapter|section|article)-title">(.*?)</div>`)

// anchorLevels orders structural kinds for hierarchical numbering.
var anchorLevels = map[string]int{
	"chapter": 1,
	"section": 2,
	"article": 3,
}

// htmlTagPattern matches HTML tags for stripping from title text.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTMLTags removes HTML tags from a string, decodes HTML entities,
// and trims whitespace. Decoding entities is essential to avoid
// double-encoding when the text is later escaped for TOC output.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// extractAnchors parses rendered HTML and returns structural anchors up
// to maxDepth. Anchors with empty titles are skipped.
func extractAnchors(htmlContent string, maxDepth int) []anchorInfo {
	matches := anchorPattern.FindAllStringSubmatch(htmlContent, -1)
	if len(matches) == 0 {
		return nil
	}

	var anchors []anchorInfo
	for _, m := range matches {
		level := anchorLevels[strings.ToLower(m[1])]
		if level > maxDepth {
			continue
		}
		text := stripHTMLTags(m[3])
		if text == "" {
			continue
		}
		anchors = append(anchors, anchorInfo{
			Level: level,
			ID:    m[2],
			Text:  text,
		})
	}
	return anchors
}

// numberingState tracks hierarchical numbering for TOC entries.
// Supports normalization (first anchor becomes level 1) and gap skipping.
type numberingState struct {
	counters     [6]int // counters[0] = level 1 count, etc.
	minLevelSeen int    // for normalization (0 = not set)
	lastLevel    int    // for tracking parent relationships
}

func newNumberingState() *numberingState {
	return &numberingState{minLevelSeen: 0, lastLevel: 0}
}

// next returns the next number string and effective depth for the given
// anchor level. Handles normalization and gap skipping. The effective
// depth drives indentation in TOC generation.
func (n *numberingState) next(level int) (numStr string, effectiveDepth int) {
	// Initialize minLevelSeen on first anchor
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	// Calculate effective depth (1-based, normalized)
	effectiveDepth = level - n.minLevelSeen + 1
	if effectiveDepth < 1 {
		effectiveDepth = 1
	}

	// Handle gap skipping: a chapter followed directly by an article
	// nests one step, not two
	if n.lastLevel > 0 && effectiveDepth > n.lastLevel+1 {
		effectiveDepth = n.lastLevel + 1
	}

	// Reset deeper level counters
	for i := effectiveDepth; i < 6; i++ {
		n.counters[i] = 0
	}

	// Increment current level
	n.counters[effectiveDepth-1]++
	n.lastLevel = effectiveDepth

	// Build number string: "1.2.3."
	var parts []string
	for i := 0; i < effectiveDepth; i++ {
		parts = append(parts, strconv.Itoa(n.counters[i]))
	}
	return strings.Join(parts, ".") + ".", effectiveDepth
}

// generateNumberedTOC creates HTML for a numbered table of contents.
// Uses <div> elements instead of <ul>/<li> to avoid CSS list-style
// conflicts.
func generateNumberedTOC(anchors []anchorInfo, title string) string {
	if len(anchors) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)

	if title != "" {
		buf.WriteString(`<div class="toc-title">`)
		buf.WriteString(html.EscapeString(title))
		buf.WriteString(`</div>`)
	}

	buf.WriteString(`<div class="toc-list">`)

	numbering := newNumberingState()

	for _, a := range anchors {
		num, effectiveDepth := numbering.next(a.Level)

		// Indentation: (depth - 1) * 1.5em
		indent := float64(effectiveDepth-1) * 1.5

		buf.WriteString(`<div class="toc-item"`)
		if indent > 0 {
			buf.WriteString(fmt.Sprintf(` style="padding-left:%.1fem"`, indent))
		}
		buf.WriteString(`><a href="#`)
		buf.WriteString(html.EscapeString(a.ID))
		buf.WriteString(`">`)
		buf.WriteString(num)
		buf.WriteString(` `)
		buf.WriteString(html.EscapeString(a.Text))
		buf.WriteString(`</a></div>`)
	}

	buf.WriteString(`</div></nav>`)
	return buf.String()
}

// TOCInjection implements TOCInjector.
type TOCInjection struct{}

// NewTOCInjection creates a new TOC injector.
func NewTOCInjection() *TOCInjection {
	return &TOCInjection{}
}

// tocSlotPattern matches the placeholder the document template emits for
// the generated TOC. html/template strips comments, so the marker is a
// span with a data attribute instead.
var tocSlotPattern = regexp.MustCompile(`(?i)<span[^>]*data-toc-slot[^>]*>\s*</span>`)

// InjectTOC extracts structural anchors and injects a numbered TOC.
// Documents that already carry an explicit table of contents keep it,
// as do documents with no anchors. If data is nil, no TOC is generated
// and only the placeholder slot is removed.
func (t *TOCInjection) InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error) {
	if data == nil {
		return stripTOCSlot(htmlContent), nil
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	// An explicit TOC element takes precedence over a generated one
	if strings.Contains(htmlContent, `<div class="toc">`) || strings.Contains(htmlContent, `<nav class="toc">`) {
		return stripTOCSlot(htmlContent), nil
	}

	maxDepth := data.MaxDepth
	if maxDepth == 0 {
		maxDepth = 3
	}

	anchors := extractAnchors(htmlContent, maxDepth)
	if len(anchors) == 0 {
		return stripTOCSlot(htmlContent), nil
	}

	tocHTML := generateNumberedTOC(anchors, data.Title)

	// Try the template's placeholder slot first
	if loc := tocSlotPattern.FindStringIndex(htmlContent); loc != nil {
		return htmlContent[:loc[0]] + tocHTML + htmlContent[loc[1]:], nil
	}

	// Fallback: insert after <body> tag
	lowerHTML := strings.ToLower(htmlContent)
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + tocHTML + htmlContent[insertPos:], nil
		}
	}

	// Last fallback: prepend
	return tocHTML + htmlContent, nil
}

// stripTOCSlot removes the placeholder when no TOC is generated.
func stripTOCSlot(htmlContent string) string {
	return tocSlotPattern.ReplaceAllString(htmlContent, "")
}
