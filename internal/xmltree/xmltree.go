// Package xmltree provides a generic XML node tree for dynamic document
// processing. Unlike struct-based unmarshalling, the tree preserves the
// full element hierarchy, attributes, and mixed content (text interleaved
// with child elements), which the element processors need for rendering.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for parsing.
var (
	ErrEmptyInput = errors.New("xml input cannot be empty")
	ErrParse      = errors.New("XML parse failed")
	ErrNoRoot     = errors.New("no root element found")
)

// Node is a single XML element with its attributes and children.
// Text is the character data directly after the opening tag; Tail is the
// character data after the closing tag (belongs to the parent's content).
type Node struct {
	Tag      string // local name, namespace stripped
	Space    string // namespace prefix or URI, empty if none
	Attrs    []Attr
	Text     string
	Tail     string
	Children []*Node
}

// Attr is a single XML attribute with its namespace stripped from the name.
type Attr struct {
	Name  string
	Value string
}

// Parse builds a Node tree from raw XML content.
func Parse(content []byte) (*Node, error) {
	if len(content) == 0 {
		return nil, ErrEmptyInput
	}

	dec := xml.NewDecoder(strings.NewReader(string(content)))

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Tag:   t.Name.Local,
				Space: t.Name.Space,
			}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrParse)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unexpected end element %q", ErrParse, t.Name.Local)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue // whitespace outside root
			}
			cur := stack[len(stack)-1]
			if len(cur.Children) == 0 {
				cur.Text += string(t)
			} else {
				last := cur.Children[len(cur.Children)-1]
				last.Tail += string(t)
			}
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// Attr returns the value of the named attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	for _, a := range n.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// FlatText returns the element's text content flattened to a single
// space-joined string: own text plus each direct child's text and tail.
// Safe to call on a nil node.
func (n *Node) FlatText() string {
	if n == nil {
		return ""
	}

	var parts []string
	if s := strings.TrimSpace(n.Text); s != "" {
		parts = append(parts, s)
	}
	for _, c := range n.Children {
		if s := strings.TrimSpace(c.Text); s != "" {
			parts = append(parts, s)
		}
		if s := strings.TrimSpace(c.Tail); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Find returns the first direct child with the given tag, or nil.
func (n *Node) Find(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns all direct children with the given tag.
func (n *Node) FindAll(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// FindPath follows a chain of child tags and returns the first match at
// each step, or nil if any step is missing. FindPath("A", "B") is the
// first B under the first A.
func (n *Node) FindPath(tags ...string) *Node {
	cur := n
	for _, tag := range tags {
		cur = cur.Find(tag)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// FindAllDeep returns all descendants (any depth) with the given tag,
// in document order.
func (n *Node) FindAllDeep(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	n.Walk(func(d *Node) bool {
		if d != n && d.Tag == tag {
			out = append(out, d)
		}
		return true
	})
	return out
}

// Walk visits n and all descendants in document order.
// The visitor returns false to skip a node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
