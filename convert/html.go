package convert

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"fontcolor/css"
	"fontcolor/model"
)

// Processor converts HTML fragments to documents and back using converters
// from the registry. Attributes which schema does not allow on text are
// dropped during upcast.
type Processor struct {
	log    *zap.Logger
	reg    *Registry
	schema *model.Schema
	css    *css.Parser
}

func NewProcessor(reg *Registry, schema *model.Schema, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		log:    log.Named("html"),
		reg:    reg,
		schema: schema,
		css:    css.NewParser(log),
	}
}

// FromHTML parses HTML fragment (body content) into a document.
func (p *Processor) FromHTML(r io.Reader) (*model.Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("unable to parse HTML: %w", err)
	}

	u := &upcaster{p: p, doc: model.NewDocument()}
	for _, n := range nodes {
		u.node(n, nil)
	}
	u.closeBlock()
	return u.doc, nil
}

// FromString is FromHTML for in-memory data.
func (p *Processor) FromString(data string) (*model.Document, error) {
	return p.FromHTML(strings.NewReader(data))
}

type upcaster struct {
	p     *Processor
	doc   *model.Document
	block *model.Element
	space bool // last character of current block is collapsible space
}

func (u *upcaster) node(n *html.Node, attrs model.Attributes) {
	switch n.Type {
	case html.TextNode:
		u.text(n.Data, attrs)
	case html.ElementNode:
		u.element(n, attrs)
	case html.DocumentNode:
		u.children(n, attrs)
	}
}

func (u *upcaster) children(n *html.Node, attrs model.Attributes) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		u.node(c, attrs)
	}
}

func (u *upcaster) element(n *html.Node, attrs model.Attributes) {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Template, atom.Head, atom.Title:
		return
	case atom.Br:
		u.text(" ", attrs)
		return
	}

	if name, ok := u.p.reg.modelElement(n.Data); ok && u.p.schema.CheckChild([]string{model.RootName}, name) {
		u.closeBlock()
		u.openBlock(name)
		u.children(n, nil)
		u.closeBlock()
		return
	}

	// unknown and inline elements are unwrapped keeping converted styles
	u.children(n, u.styleAttributes(n, attrs))
}

func (u *upcaster) styleAttributes(n *html.Node, inherited model.Attributes) model.Attributes {
	convs := u.p.reg.stylesOf(n.Data)
	if len(convs) == 0 {
		return inherited
	}
	style, ok := attrValue(n, "style")
	if !ok {
		return inherited
	}

	st := u.p.css.ParseInline(style)
	attrs, cloned := inherited, false
	for _, c := range convs {
		d, ok := st.Get(c.Style)
		if !ok {
			continue
		}
		value, ok := c.upcast(d.Value.Raw)
		if !ok {
			u.p.log.Debug("Style value rejected", zap.String("element", n.Data), zap.String("property", c.Style), zap.String("value", d.Value.Raw))
			continue
		}
		if !cloned {
			// inner element overrides, inherited map is shared with siblings
			attrs, cloned = make(model.Attributes, len(inherited)+1), true
			maps.Copy(attrs, inherited)
		}
		attrs[c.Model] = value
	}
	return attrs
}

func (u *upcaster) openBlock(name string) {
	u.block = model.NewElement(name)
	u.space = true
	u.doc.Root.AppendChild(u.block)
}

func (u *upcaster) closeBlock() {
	if u.block == nil {
		return
	}
	defer func() { u.block = nil }()

	if n := len(u.block.Children); n > 0 {
		if t, ok := u.block.Children[n-1].(*model.Text); ok {
			t.Data = strings.TrimRight(t.Data, " ")
			if t.Data == "" {
				u.block.Children = u.block.Children[:n-1]
			}
		}
	}
	// lone non-breaking space is a filler of an empty block
	if u.block.Text() == "\u00a0" {
		u.block.Children = nil
	}
}

func (u *upcaster) text(data string, attrs model.Attributes) {
	data = collapseSpace(data)
	if u.block == nil {
		if strings.Trim(data, " ") == "" {
			return
		}
		name := u.p.reg.DefaultBlock()
		if name == "" {
			u.p.log.Debug("Dropping text outside of block, no default block", zap.String("text", data))
			return
		}
		u.openBlock(name)
	}

	if u.space {
		data = strings.TrimLeft(data, " ")
	}
	if data == "" {
		return
	}
	u.space = strings.HasSuffix(data, " ")
	u.block.AppendText(data, u.allowed(attrs))
}

// allowed filters attributes by schema.
func (u *upcaster) allowed(attrs model.Attributes) model.Attributes {
	if len(attrs) == 0 {
		return nil
	}
	ctx := []string{u.block.Name, model.ItemText}
	out := make(model.Attributes, len(attrs))
	for k, v := range attrs {
		if !u.p.schema.CheckAttribute(ctx, k) {
			u.p.log.Debug("Attribute is not allowed on text, dropping", zap.String("attribute", k), zap.String("block", u.block.Name))
			continue
		}
		out[k] = v
	}
	return out
}

// collapseSpace replaces runs of HTML white space with single space.
func collapseSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prev := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !prev {
				sb.WriteByte(' ')
			}
			prev = true
		default:
			sb.WriteRune(r)
			prev = false
		}
	}
	return sb.String()
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// ToHTML serializes document as HTML fragment. Text carrying converted
// attributes is wrapped in view elements with inline style, declarations
// sorted by property name. Empty blocks are written with &nbsp; filler.
func (p *Processor) ToHTML(doc *model.Document) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, c := range doc.Root.Children {
		el, ok := c.(*model.Element)
		if !ok {
			return "", fmt.Errorf("text outside of block in document root")
		}
		vn, err := p.downcastBlock(el)
		if err != nil {
			return "", err
		}
		body.AppendChild(vn)
	}

	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", fmt.Errorf("unable to render HTML: %w", err)
		}
	}
	return strings.ReplaceAll(sb.String(), "\u00a0", "&nbsp;"), nil
}

func (p *Processor) downcastBlock(el *model.Element) (*html.Node, error) {
	view, ok := p.reg.viewElement(el.Name)
	if !ok {
		return nil, fmt.Errorf("no view converter for model element %q", el.Name)
	}
	vn := newElement(view)
	if el.Len() == 0 {
		vn.AppendChild(&html.Node{Type: html.TextNode, Data: "\u00a0"})
		return vn, nil
	}
	for _, c := range el.Children {
		t, ok := c.(*model.Text)
		if !ok {
			return nil, fmt.Errorf("unsupported element %q inside %q", c.(*model.Element).Name, el.Name)
		}
		vn.AppendChild(p.downcastText(t))
	}
	return vn, nil
}

func (p *Processor) downcastText(t *model.Text) *html.Node {
	styles := make(map[string]*css.Style)
	for _, k := range t.Attrs.Keys() {
		c, ok := p.reg.attribute(k)
		if !ok {
			continue
		}
		v := c.downcast(t.Attrs[k])
		if v == "" {
			continue
		}
		st, ok := styles[c.element()]
		if !ok {
			st = &css.Style{}
			styles[c.element()] = st
		}
		st.Set(css.Declaration{Property: c.Style, Value: css.Value{Raw: v}})
	}

	n := &html.Node{Type: html.TextNode, Data: t.Data}
	names := slices.Sorted(maps.Keys(styles))
	for i := len(names) - 1; i >= 0; i-- {
		wrap := newElement(names[i])
		wrap.Attr = []html.Attribute{{Key: "style", Val: styles[names[i]].String()}}
		wrap.AppendChild(n)
		n = wrap
	}
	return n
}

func newElement(name string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: name, DataAtom: atom.Lookup([]byte(name))}
}
