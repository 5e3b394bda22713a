// Package model is the editable document representation: a tree of named
// elements whose leaves are text runs. Every text run carries a map of
// attributes (font color is one of them) which applies uniformly to all its
// characters.
package model

import (
	"fmt"
	"maps"
	"slices"
	"unicode/utf8"
)

// RootName is the name of the document root element.
const RootName = "$root"

// Attributes maps attribute name to its value.
type Attributes map[string]string

// Clone returns a copy of attributes, nil stays nil.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// Equal reports whether both maps hold the same attributes. Nil and empty
// maps are equal.
func (a Attributes) Equal(b Attributes) bool {
	return maps.Equal(a, b)
}

// Keys returns attribute names in sorted order.
func (a Attributes) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// Node is either *Element or *Text.
type Node interface {
	size() int
}

// Text is a run of characters sharing the same attributes.
type Text struct {
	Data  string
	Attrs Attributes
}

func (t *Text) size() int {
	return utf8.RuneCountInString(t.Data)
}

// Element is a named container (paragraph, root).
type Element struct {
	Name     string
	Attrs    Attributes
	Children []Node
}

func (e *Element) size() int {
	return 1
}

// NewElement creates element with given name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// AppendChild adds node at the end of element children. Text nodes are
// merged with preceding text when attributes are equal.
func (e *Element) AppendChild(n Node) {
	if t, ok := n.(*Text); ok {
		e.AppendText(t.Data, t.Attrs)
		return
	}
	e.Children = append(e.Children, n)
}

// AppendText adds text run with a copy of attrs. Empty text is ignored.
func (e *Element) AppendText(data string, attrs Attributes) {
	if data == "" {
		return
	}
	if len(e.Children) > 0 {
		if last, ok := e.Children[len(e.Children)-1].(*Text); ok && last.Attrs.Equal(attrs) {
			last.Data += data
			return
		}
	}
	e.Children = append(e.Children, &Text{Data: data, Attrs: attrs.Clone()})
}

// ChildElements returns element children.
func (e *Element) ChildElements() []*Element {
	var out []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// Len returns element length in offsets: a character of text is one
// offset, a child element is one offset.
func (e *Element) Len() int {
	var n int
	for _, c := range e.Children {
		n += c.size()
	}
	return n
}

// Text returns concatenated text of the element and its descendants.
func (e *Element) Text() string {
	var s string
	for _, c := range e.Children {
		switch n := c.(type) {
		case *Text:
			s += n.Data
		case *Element:
			s += n.Text()
		}
	}
	return s
}

// Normalize merges adjacent text runs with equal attributes and drops empty
// ones, recursively.
func (e *Element) Normalize() {
	children := e.Children
	e.Children = nil
	for _, c := range children {
		switch n := c.(type) {
		case *Text:
			e.AppendText(n.Data, n.Attrs)
		case *Element:
			n.Normalize()
			e.Children = append(e.Children, n)
		}
	}
}

// AttributeAt returns attribute of the text character at offset.
func (e *Element) AttributeAt(offset int, key string) (string, bool) {
	if offset < 0 {
		return "", false
	}
	pos := 0
	for _, c := range e.Children {
		sz := c.size()
		if offset < pos+sz {
			if t, ok := c.(*Text); ok {
				v, ok := t.Attrs[key]
				return v, ok
			}
			return "", false
		}
		pos += sz
	}
	return "", false
}

// SetAttribute sets attribute on all text in [start, end) offsets, empty
// value removes the attribute. Text runs are split on range boundaries.
func (e *Element) SetAttribute(start, end int, key, value string) error {
	if start < 0 || end < start || end > e.Len() {
		return fmt.Errorf("range [%d, %d) is out of element %q bounds [0, %d)", start, end, e.Name, e.Len())
	}
	if start == end {
		return nil
	}

	var (
		out []Node
		pos int
	)
	for _, c := range e.Children {
		t, ok := c.(*Text)
		sz := c.size()
		if !ok || pos+sz <= start || pos >= end {
			out = append(out, c)
			pos += sz
			continue
		}

		runes := []rune(t.Data)
		from := max(start-pos, 0)
		to := min(end-pos, sz)

		if from > 0 {
			out = append(out, &Text{Data: string(runes[:from]), Attrs: t.Attrs.Clone()})
		}
		attrs := t.Attrs.Clone()
		if value == "" {
			delete(attrs, key)
		} else {
			if attrs == nil {
				attrs = make(Attributes)
			}
			attrs[key] = value
		}
		out = append(out, &Text{Data: string(runes[from:to]), Attrs: attrs})
		if to < sz {
			out = append(out, &Text{Data: string(runes[to:]), Attrs: t.Attrs.Clone()})
		}
		pos += sz
	}
	e.Children = out
	e.Normalize()
	return nil
}

// RemoveAttribute removes attribute from all text in [start, end) offsets.
func (e *Element) RemoveAttribute(start, end int, key string) error {
	return e.SetAttribute(start, end, key, "")
}

// Document is a model tree with a single root.
type Document struct {
	Root *Element
}

// NewDocument creates empty document.
func NewDocument() *Document {
	return &Document{Root: NewElement(RootName)}
}

// Block returns root child element at index.
func (d *Document) Block(index int) (*Element, error) {
	blocks := d.Root.ChildElements()
	if index < 0 || index >= len(blocks) {
		return nil, fmt.Errorf("no block at index %d, document has %d", index, len(blocks))
	}
	return blocks[index], nil
}
