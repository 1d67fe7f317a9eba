package render

import (
	"strings"

	"github.com/alnah/go-xml2doc/internal/xmltree"
)

// maxTitleLength caps title candidates; longer text is body content that
// happens to live in a title-like element.
const maxTitleLength = 500

// titleTags are element names that typically hold the document title.
var titleTags = map[string]bool{
	"title":          true,
	"name":           true,
	"heading":        true,
	"documenttitle":  true,
	"lawtitle":       true,
	"book_title":     true,
	"document_title": true,
}

// titleLabels are values that are labels rather than actual titles.
var titleLabels = map[string]bool{
	"title":   true,
	"name":    true,
	"heading": true,
}

// DocumentTitle finds the document title by scanning for title-like
// elements in document order. Falls back to a humanized root tag name.
func DocumentTitle(root *xmltree.Node) string {
	var title string
	root.Walk(func(n *xmltree.Node) bool {
		if title != "" {
			return false
		}
		if !titleTags[strings.ToLower(n.Tag)] {
			return true
		}
		text := strings.TrimSpace(n.FlatText())
		if text == "" || len([]rune(text)) >= maxTitleLength {
			return true
		}
		if titleLabels[strings.ToLower(text)] {
			return true
		}
		title = text
		return false
	})

	if title != "" {
		return title
	}
	return humanizeTag(root.Tag)
}

// humanizeTag turns "legal_document" or "my-doc" into "Legal Document".
func humanizeTag(tag string) string {
	s := strings.NewReplacer("_", " ", "-", " ").Replace(tag)
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// maxMetaValueLength filters out attribute values too long to show as
// header metadata.
const maxMetaValueLength = 100

// DocumentMeta builds a "key: value | key: value" summary from the root
// element's attributes.
func DocumentMeta(root *xmltree.Node) string {
	var parts []string
	for _, a := range root.Attrs {
		if len(a.Value) < maxMetaValueLength {
			parts = append(parts, a.Name+": "+a.Value)
		}
	}
	return strings.Join(parts, " | ")
}

// NavItem is a single entry in the fixed navigation panel.
type NavItem struct {
	Href  string
	Label string
}

// navPatterns describe structural elements worth linking from the
// navigation panel, with where to find their title and ID.
var navPatterns = []struct {
	tag      string
	titleTag string
	idAttr   string
	anchor   string
}{
	{"Chapter", "ChapterTitle", "Num", "chapter"},
	{"Section", "SectionTitle", "Num", "section"},
	{"Article", "ArticleTitle", "Num", "article"},
	{"Part", "PartTitle", "Num", "part"},
	{"chapter", "title", "id", "chapter"},
	{"section", "title", "id", "section"},
	{"article", "title", "id", "article"},
}

// NavItems extracts navigation entries for structural elements.
func NavItems(root *xmltree.Node) []NavItem {
	var items []NavItem
	for _, p := range navPatterns {
		for _, elem := range root.FindAllDeep(p.tag) {
			label := elem.Find(p.titleTag).FlatText()
			if label == "" {
				label = findAnyTitle(elem)
			}
			if label == "" {
				label = elem.FlatText()
			}
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}

			id := elem.Attr(p.idAttr)
			if id == "" {
				id = elem.Attr("id")
			}
			if id == "" {
				id = elem.Attr("Num")
			}

			items = append(items, NavItem{
				Href:  "#" + p.anchor + "-" + id,
				Label: label,
			})
		}
	}
	return items
}

// findAnyTitle looks for a common title child under an element.
func findAnyTitle(n *xmltree.Node) string {
	for _, tag := range []string{"title", "Title", "name", "Name"} {
		if c := n.Find(tag); c != nil {
			return c.FlatText()
		}
	}
	return ""
}
