// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xmltree reads an XML document into a generic tree of tagged nodes.
// Converters walk the tree instead of binding to a fixed schema, so one
// reader serves both the flat property list and the nested queue tree.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

var (
	// ErrNoRoot is returned for input that contains no element at all.
	ErrNoRoot = errors.New("document has no root element")

	// ErrTrailingElement is returned when a second top-level element follows the root.
	ErrTrailingElement = errors.New("junk after document element")
)

// SyntaxError reports a malformed document together with the line the
// decoder stopped at.
type SyntaxError struct {
	Line int
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Node is one element of the document.
type Node struct {
	// Tag is the element's local name; namespace prefixes are dropped.
	Tag string

	// Attrs maps attribute local names to values.
	Attrs map[string]string

	// Text is the character data inside the element before its first child
	// element. Text following a child is not kept.
	Text string

	// Children are the child elements in document order.
	Children []*Node
}

// Attr returns the named attribute, or "" if it is absent.
func (n *Node) Attr(name string) string {
	return n.Attrs[name]
}

// Child returns the first child element with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildrenByTag returns every child element with the given tag.
func (n *Node) ChildrenByTag(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the text of the first child with the given tag and
// whether such a child exists.
func (n *Node) ChildText(tag string) (string, bool) {
	c := n.Child(tag)
	if c == nil {
		return "", false
	}
	return c.Text, true
}

// Walk calls fn for n and every descendant in depth-first pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Parse reads a complete document from r and returns its root element.
// The whole document must be well formed; no partial tree is returned on error.
// Documents declaring an encoding other than UTF-8 are transcoded.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root  *Node
		stack []*Node
		text  []*strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, _ := dec.InputPos()
			return nil, &SyntaxError{Line: line, Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				line, _ := dec.InputPos()
				return nil, &SyntaxError{Line: line, Err: ErrTrailingElement}
			}
			n := &Node{Tag: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				n.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else {
				root = n
			}
			stack = append(stack, n)
			text = append(text, &strings.Builder{})

		case xml.EndElement:
			n := stack[len(stack)-1]
			n.Text = text[len(text)-1].String()
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]

		case xml.CharData:
			if n := len(stack); n > 0 && len(stack[n-1].Children) == 0 {
				text[n-1].Write(t)
			}
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return root, nil
}
