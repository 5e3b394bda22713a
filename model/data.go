package model

import (
	"fmt"
	"strings"
)

// Model data is a compact textual form of a document used in tests and
// debug output:
//
//	<paragraph>fo<$text fontColor="rgb(0,10,20)">o b</$text>ar</paragraph>
//
// Root children are written one after another, text without attributes is
// written as is, attributed text is wrapped in a $text pseudo element.

const textTag = "$text"

var (
	escaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	unescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`)
)

// Stringify returns model data of the document.
func Stringify(doc *Document) string {
	var sb strings.Builder
	for _, c := range doc.Root.Children {
		writeNode(&sb, c)
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Text:
		if len(n.Attrs) == 0 {
			sb.WriteString(escaper.Replace(n.Data))
			return
		}
		writeOpen(sb, textTag, n.Attrs)
		sb.WriteString(escaper.Replace(n.Data))
		sb.WriteString("</" + textTag + ">")
	case *Element:
		writeOpen(sb, n.Name, n.Attrs)
		for _, c := range n.Children {
			writeNode(sb, c)
		}
		sb.WriteString("</" + n.Name + ">")
	}
}

func writeOpen(sb *strings.Builder, name string, attrs Attributes) {
	sb.WriteByte('<')
	sb.WriteString(name)
	for _, k := range attrs.Keys() {
		fmt.Fprintf(sb, ` %s="%s"`, k, escaper.Replace(attrs[k]))
	}
	sb.WriteByte('>')
}

// Parse builds document from model data. When schema is not nil resulting
// document is validated against it.
func Parse(data string, schema *Schema) (*Document, error) {
	doc := NewDocument()
	p := &dataParser{src: data}

	stack := []*Element{doc.Root}
	var textAttrs Attributes // non nil while inside $text

	for !p.eof() {
		if p.peek() != '<' {
			text := p.until('<')
			if textAttrs == nil && len(stack) == 1 && strings.TrimSpace(text) == "" {
				// formatting between root elements
				continue
			}
			stack[len(stack)-1].AppendText(unescaper.Replace(text), textAttrs)
			continue
		}

		tag, err := p.tag()
		if err != nil {
			return nil, err
		}

		switch {
		case tag.closing && tag.name == textTag:
			if textAttrs == nil {
				return nil, p.errorf("unexpected </%s>", textTag)
			}
			textAttrs = nil

		case tag.closing:
			top := stack[len(stack)-1]
			if len(stack) == 1 || top.Name != tag.name {
				return nil, p.errorf("unexpected </%s>", tag.name)
			}
			if textAttrs != nil {
				return nil, p.errorf("unclosed <%s> in <%s>", textTag, top.Name)
			}
			stack = stack[:len(stack)-1]

		case tag.name == textTag:
			if textAttrs != nil {
				return nil, p.errorf("nested <%s>", textTag)
			}
			if tag.selfClosing {
				continue
			}
			textAttrs = tag.attrs
			if textAttrs == nil {
				textAttrs = Attributes{}
			}

		default:
			if textAttrs != nil {
				return nil, p.errorf("element <%s> inside <%s>", tag.name, textTag)
			}
			el := &Element{Name: tag.name, Attrs: tag.attrs}
			stack[len(stack)-1].AppendChild(el)
			if !tag.selfClosing {
				stack = append(stack, el)
			}
		}
	}

	if textAttrs != nil {
		return nil, p.errorf("unclosed <%s>", textTag)
	}
	if len(stack) > 1 {
		return nil, p.errorf("unclosed <%s>", stack[len(stack)-1].Name)
	}

	doc.Root.Normalize()
	if schema != nil {
		if err := schema.Validate(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

type dataTag struct {
	name        string
	attrs       Attributes
	closing     bool
	selfClosing bool
}

type dataParser struct {
	src string
	pos int
}

func (p *dataParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *dataParser) peek() byte {
	return p.src[p.pos]
}

func (p *dataParser) errorf(format string, args ...any) error {
	return fmt.Errorf("model data, offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *dataParser) until(c byte) string {
	start := p.pos
	if i := strings.IndexByte(p.src[p.pos:], c); i >= 0 {
		p.pos += i
	} else {
		p.pos = len(p.src)
	}
	return p.src[start:p.pos]
}

func (p *dataParser) skipSpace() {
	for !p.eof() && strings.IndexByte(" \t\r\n", p.peek()) >= 0 {
		p.pos++
	}
}

func (p *dataParser) name() string {
	start := p.pos
	for !p.eof() && strings.IndexByte(" \t\r\n/>=\"", p.peek()) < 0 {
		p.pos++
	}
	return p.src[start:p.pos]
}

// tag reads tag starting at '<'.
func (p *dataParser) tag() (dataTag, error) {
	var t dataTag
	p.pos++ // '<'
	if !p.eof() && p.peek() == '/' {
		t.closing = true
		p.pos++
	}
	if t.name = p.name(); t.name == "" {
		return t, p.errorf("missing tag name")
	}

	for {
		p.skipSpace()
		if p.eof() {
			return t, p.errorf("unterminated tag <%s", t.name)
		}
		switch p.peek() {
		case '>':
			p.pos++
			return t, nil
		case '/':
			p.pos++
			if p.eof() || p.peek() != '>' {
				return t, p.errorf("expected '>' after '/' in <%s", t.name)
			}
			p.pos++
			t.selfClosing = true
			return t, nil
		}

		if t.closing {
			return t, p.errorf("attributes in closing tag </%s", t.name)
		}
		key := p.name()
		if key == "" {
			return t, p.errorf("bad attribute in <%s", t.name)
		}
		p.skipSpace()
		if p.eof() || p.peek() != '=' {
			return t, p.errorf("attribute %q without value", key)
		}
		p.pos++
		p.skipSpace()
		if p.eof() || p.peek() != '"' {
			return t, p.errorf("attribute %q value must be quoted", key)
		}
		p.pos++
		val := p.until('"')
		if p.eof() {
			return t, p.errorf("unterminated value of attribute %q", key)
		}
		p.pos++
		if t.attrs == nil {
			t.attrs = make(Attributes)
		}
		t.attrs[key] = unescaper.Replace(val)
	}
}
