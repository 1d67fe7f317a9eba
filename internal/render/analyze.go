package render

import (
	"sort"
	"strings"

	"github.com/alnah/go-xml2doc/internal/xmltree"
)

// Structure describes the shape of an XML document: which elements occur,
// how they nest, and which carry text versus children.
type Structure struct {
	Elements          []string            // all element names, sorted
	Counts            map[string]int      // occurrences per element
	Hierarchy         map[string][]string // parent -> sorted child names
	Attributes        map[string][]string // element -> sorted attribute names
	TextElements      []string            // elements with direct text content
	ContainerElements []string            // elements with child elements
}

// Analyze walks the tree and builds a Structure report.
func Analyze(root *xmltree.Node) *Structure {
	s := &Structure{
		Counts:     make(map[string]int),
		Hierarchy:  make(map[string][]string),
		Attributes: make(map[string][]string),
	}

	elements := make(map[string]struct{})
	hierarchy := make(map[string]map[string]struct{})
	attributes := make(map[string]map[string]struct{})
	textElements := make(map[string]struct{})
	containerElements := make(map[string]struct{})

	var traverse func(n *xmltree.Node, parent string)
	traverse = func(n *xmltree.Node, parent string) {
		tag := n.Tag
		elements[tag] = struct{}{}
		s.Counts[tag]++

		if parent != "" {
			if hierarchy[parent] == nil {
				hierarchy[parent] = make(map[string]struct{})
			}
			hierarchy[parent][tag] = struct{}{}
		}

		for _, a := range n.Attrs {
			if attributes[tag] == nil {
				attributes[tag] = make(map[string]struct{})
			}
			attributes[tag][a.Name] = struct{}{}
		}

		if strings.TrimSpace(n.Text) != "" {
			textElements[tag] = struct{}{}
		}
		if len(n.Children) > 0 {
			containerElements[tag] = struct{}{}
			for _, c := range n.Children {
				traverse(c, tag)
			}
		}
	}
	traverse(root, "")

	s.Elements = sortedKeys(elements)
	s.TextElements = sortedKeys(textElements)
	s.ContainerElements = sortedKeys(containerElements)
	for parent, children := range hierarchy {
		s.Hierarchy[parent] = sortedKeys(children)
	}
	for tag, attrs := range attributes {
		s.Attributes[tag] = sortedKeys(attrs)
	}
	return s
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
