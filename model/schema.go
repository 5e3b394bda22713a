package model

import (
	"fmt"
	"slices"
	"strings"
)

// Generic items every schema starts with.
const (
	ItemRoot            = RootName
	ItemBlock           = "$block"
	ItemText            = "$text"
	ItemClipboardHolder = "$clipboardHolder"
)

// ItemDefinition describes where an item may appear and which attributes
// it accepts. Definitions registered for the same item are merged.
type ItemDefinition struct {
	AllowIn         []string // items this item may be a child of
	AllowAttributes []string // attributes this item may carry
	AllowContentOf  []string // this item accepts children of listed items
	InheritAllFrom  string   // copies placement, content, attributes and type of another item

	IsBlock  bool
	IsInline bool
	IsLimit  bool
}

// AttributeProperties are informational flags for attributes.
type AttributeProperties struct {
	IsFormatting bool // attribute is text formatting (bold, color...)
	CopyOnEnter  bool // attribute is carried over when a block is split
}

// AttributeCheck decides whether attr is allowed in context. When ok is
// false the decision is left to other checks and item definitions.
type AttributeCheck func(context []string, attr string) (allowed, ok bool)

type compiledItem struct {
	name       string
	allowIn    map[string]bool
	attributes map[string]bool
	isBlock    bool
	isInline   bool
	isLimit    bool
}

// Schema defines which model structures are allowed.
// Schema is not safe for concurrent modification.
type Schema struct {
	defs      map[string][]ItemDefinition
	attrProps map[string]AttributeProperties
	checks    []AttributeCheck
	compiled  map[string]*compiledItem
}

// NewSchema returns schema with generic items registered.
func NewSchema() *Schema {
	s := &Schema{
		defs:      make(map[string][]ItemDefinition),
		attrProps: make(map[string]AttributeProperties),
	}
	s.defs[ItemRoot] = []ItemDefinition{{IsLimit: true}}
	s.defs[ItemBlock] = []ItemDefinition{{AllowIn: []string{ItemRoot}, IsBlock: true}}
	s.defs[ItemClipboardHolder] = []ItemDefinition{{AllowContentOf: []string{ItemRoot}, IsLimit: true}}
	s.defs[ItemText] = []ItemDefinition{{AllowIn: []string{ItemBlock, ItemClipboardHolder}, IsInline: true}}
	return s
}

// Register adds new item to the schema.
func (s *Schema) Register(name string, def ItemDefinition) error {
	if _, exists := s.defs[name]; exists {
		return fmt.Errorf("schema item %q is already registered", name)
	}
	s.defs[name] = []ItemDefinition{def}
	s.compiled = nil
	return nil
}

// Extend adds rules to already registered item.
func (s *Schema) Extend(name string, def ItemDefinition) error {
	if _, exists := s.defs[name]; !exists {
		return fmt.Errorf("cannot extend unregistered schema item %q", name)
	}
	s.defs[name] = append(s.defs[name], def)
	s.compiled = nil
	return nil
}

// IsRegistered reports whether item is known to the schema.
func (s *Schema) IsRegistered(name string) bool {
	_, ok := s.defs[name]
	return ok
}

// IsBlock reports whether item is a block.
func (s *Schema) IsBlock(name string) bool {
	it := s.item(name)
	return it != nil && it.isBlock
}

// IsLimit reports whether item is a limit element.
func (s *Schema) IsLimit(name string) bool {
	it := s.item(name)
	return it != nil && it.isLimit
}

// CheckChild reports whether child may be placed inside the last item of
// context.
func (s *Schema) CheckChild(context []string, child string) bool {
	if len(context) == 0 {
		return false
	}
	it := s.item(child)
	if it == nil || s.item(context[len(context)-1]) == nil {
		return false
	}
	return it.allowIn[context[len(context)-1]]
}

// AddAttributeCheck registers context dependent attribute rule. Checks
// added later take precedence.
func (s *Schema) AddAttributeCheck(check AttributeCheck) {
	s.checks = append(s.checks, check)
}

// CheckAttribute reports whether the last item of context may carry attr.
// Last item must be allowed in its parent, attribute checks are consulted
// before item definitions.
func (s *Schema) CheckAttribute(context []string, attr string) bool {
	n := len(context)
	if n == 0 {
		return false
	}
	it := s.item(context[n-1])
	if it == nil {
		return false
	}
	if n > 1 && !s.CheckChild(context[:n-1], context[n-1]) {
		return false
	}
	for i := len(s.checks) - 1; i >= 0; i-- {
		if allowed, ok := s.checks[i](context, attr); ok {
			return allowed
		}
	}
	return it.attributes[attr]
}

// SetAttributeProperties records informational properties of an attribute.
func (s *Schema) SetAttributeProperties(attr string, props AttributeProperties) {
	s.attrProps[attr] = props
}

// AttributeProperties returns properties of an attribute, zero value if unset.
func (s *Schema) AttributeProperties(attr string) AttributeProperties {
	return s.attrProps[attr]
}

// Validate checks the whole document against the schema.
func (s *Schema) Validate(doc *Document) error {
	var problems []string
	s.validate([]string{doc.Root.Name}, doc.Root, &problems)
	if len(problems) > 0 {
		return fmt.Errorf("document does not match schema: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (s *Schema) validate(context []string, el *Element, problems *[]string) {
	path := strings.Join(context, " > ")
	for _, c := range el.Children {
		switch n := c.(type) {
		case *Text:
			if !s.CheckChild(context, ItemText) {
				*problems = append(*problems, fmt.Sprintf("text is not allowed in %s", path))
				continue
			}
			for _, k := range n.Attrs.Keys() {
				if !s.CheckAttribute(append(slices.Clone(context), ItemText), k) {
					*problems = append(*problems, fmt.Sprintf("attribute %q is not allowed on text in %s", k, path))
				}
			}
		case *Element:
			if !s.CheckChild(context, n.Name) {
				*problems = append(*problems, fmt.Sprintf("element %q is not allowed in %s", n.Name, path))
				continue
			}
			for _, k := range n.Attrs.Keys() {
				if !s.CheckAttribute(append(slices.Clone(context), n.Name), k) {
					*problems = append(*problems, fmt.Sprintf("attribute %q is not allowed on %q", k, n.Name))
				}
			}
			s.validate(append(slices.Clone(context), n.Name), n, problems)
		}
	}
}

func (s *Schema) item(name string) *compiledItem {
	if s.compiled == nil {
		s.compile()
	}
	return s.compiled[name]
}

// compile merges all definitions and resolves inheritance.
func (s *Schema) compile() {
	items := make(map[string]*compiledItem, len(s.defs))
	contentOf := make(map[string][]string)

	var resolve func(name string, seen map[string]bool) *compiledItem
	resolve = func(name string, seen map[string]bool) *compiledItem {
		if it, ok := items[name]; ok {
			return it
		}
		defs, ok := s.defs[name]
		if !ok || seen[name] {
			return nil
		}
		seen[name] = true

		it := &compiledItem{name: name, allowIn: make(map[string]bool), attributes: make(map[string]bool)}
		for _, d := range defs {
			if d.InheritAllFrom != "" {
				if parent := resolve(d.InheritAllFrom, seen); parent != nil {
					for k := range parent.allowIn {
						it.allowIn[k] = true
					}
					for k := range parent.attributes {
						it.attributes[k] = true
					}
					it.isBlock = it.isBlock || parent.isBlock
					it.isInline = it.isInline || parent.isInline
					it.isLimit = it.isLimit || parent.isLimit
					contentOf[name] = append(contentOf[name], d.InheritAllFrom)
				}
			}
			for _, k := range d.AllowIn {
				it.allowIn[k] = true
			}
			for _, k := range d.AllowAttributes {
				it.attributes[k] = true
			}
			contentOf[name] = append(contentOf[name], d.AllowContentOf...)
			it.isBlock = it.isBlock || d.IsBlock
			it.isInline = it.isInline || d.IsInline
			it.isLimit = it.isLimit || d.IsLimit
		}
		items[name] = it
		return it
	}

	for name := range s.defs {
		resolve(name, make(map[string]bool))
	}

	// item accepting content of another gets listed wherever that one is
	for holder, sources := range contentOf {
		for _, it := range items {
			for _, src := range sources {
				if it.allowIn[src] {
					it.allowIn[holder] = true
				}
			}
		}
	}
	s.compiled = items
}
