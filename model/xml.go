package model

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// XML form of the document. Unlike model data it is well-formed XML:
// every text run is a <text> element so whitespace-only runs survive.
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<root><paragraph><text>fo</text><text fontColor="#000">o</text></paragraph></root>

const (
	xmlRootTag = "root"
	xmlTextTag = "text"
)

// WriteXML writes document as XML.
func (d *Document) WriteXML(w io.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement(xmlRootTag)
	for _, c := range d.Root.Children {
		xmlNode(root, c)
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write document XML: %w", err)
	}
	return nil
}

func xmlNode(parent *etree.Element, n Node) {
	switch n := n.(type) {
	case *Text:
		el := parent.CreateElement(xmlTextTag)
		for _, k := range n.Attrs.Keys() {
			el.CreateAttr(k, n.Attrs[k])
		}
		el.SetText(n.Data)
	case *Element:
		el := parent.CreateElement(n.Name)
		for _, k := range n.Attrs.Keys() {
			el.CreateAttr(k, n.Attrs[k])
		}
		for _, c := range n.Children {
			xmlNode(el, c)
		}
	}
}

// ReadXML reads document previously written by WriteXML. When schema is not
// nil resulting document is validated against it.
func ReadXML(r io.Reader, schema *Schema) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read document XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document XML has no root element")
	}
	if root.Tag != xmlRootTag {
		return nil, fmt.Errorf("unexpected document XML root element %q", root.Tag)
	}

	res := NewDocument()
	if err := readXMLChildren(res.Root, root); err != nil {
		return nil, err
	}
	res.Root.Normalize()

	if schema != nil {
		if err := schema.Validate(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func readXMLChildren(dst *Element, src *etree.Element) error {
	for _, child := range src.ChildElements() {
		attrs := xmlAttrs(child)
		if child.Tag == xmlTextTag {
			if len(child.ChildElements()) > 0 {
				return fmt.Errorf("element inside <%s> in <%s>", xmlTextTag, dst.Name)
			}
			dst.AppendText(xmlCharData(child), attrs)
			continue
		}
		el := &Element{Name: child.Tag, Attrs: attrs}
		if err := readXMLChildren(el, child); err != nil {
			return err
		}
		dst.Children = append(dst.Children, el)
	}
	return nil
}

func xmlAttrs(el *etree.Element) Attributes {
	if len(el.Attr) == 0 {
		return nil
	}
	attrs := make(Attributes, len(el.Attr))
	for _, a := range el.Attr {
		attrs[a.FullKey()] = a.Value
	}
	return attrs
}

func xmlCharData(el *etree.Element) string {
	var s string
	for _, t := range el.Child {
		if cd, ok := t.(*etree.CharData); ok {
			s += cd.Data
		}
	}
	return s
}
