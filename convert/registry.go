// Package convert translates between HTML markup and the document model.
// Converters are registered by plugins: element converters map model blocks
// to view elements, attribute converters map text attributes to a single
// inline style property of a wrapping view element.
package convert

import (
	"fmt"
	"slices"
)

// ElementToElement maps model element to view element, e.g. paragraph to p.
type ElementToElement struct {
	Model string
	View  string
}

// AttributeToStyle maps text attribute to inline style property of the
// view element wrapping the text.
type AttributeToStyle struct {
	Model   string // text attribute key
	Element string // wrapping view element, "span" when empty
	Style   string // style property

	// Upcast converts style value to attribute value, false means value
	// is not accepted and attribute is not set. When nil value is used as is.
	Upcast func(value string) (string, bool)
	// Downcast converts attribute value to style value. When nil value is
	// used as is.
	Downcast func(value string) string
}

func (c AttributeToStyle) element() string {
	if c.Element == "" {
		return "span"
	}
	return c.Element
}

func (c AttributeToStyle) upcast(value string) (string, bool) {
	if c.Upcast == nil {
		return value, value != ""
	}
	return c.Upcast(value)
}

func (c AttributeToStyle) downcast(value string) string {
	if c.Downcast == nil {
		return value
	}
	return c.Downcast(value)
}

// Registry holds converters in both directions. Registry is not safe for
// concurrent modification.
type Registry struct {
	elements     []ElementToElement
	styles       []AttributeToStyle
	defaultBlock string
}

func NewRegistry() *Registry {
	return &Registry{}
}

// ElementToElement registers two-way element converter.
func (r *Registry) ElementToElement(c ElementToElement) error {
	if c.Model == "" || c.View == "" {
		return fmt.Errorf("element converter requires both model and view names: %+v", c)
	}
	for _, e := range r.elements {
		if e.Model == c.Model {
			return fmt.Errorf("model element %q already has converter to <%s>", c.Model, e.View)
		}
		if e.View == c.View {
			return fmt.Errorf("view element <%s> already has converter to %q", c.View, e.Model)
		}
	}
	r.elements = append(r.elements, c)
	return nil
}

// AttributeToStyle registers two-way attribute converter.
func (r *Registry) AttributeToStyle(c AttributeToStyle) error {
	if c.Model == "" || c.Style == "" {
		return fmt.Errorf("attribute converter requires both attribute and style names: %+v", c)
	}
	for _, s := range r.styles {
		if s.Model == c.Model {
			return fmt.Errorf("attribute %q already has converter to style %q", c.Model, s.Style)
		}
		if s.Style == c.Style && s.element() == c.element() {
			return fmt.Errorf("style %q of <%s> already converts to attribute %q", c.Style, c.element(), s.Model)
		}
	}
	r.styles = append(r.styles, c)
	return nil
}

// SetDefaultBlock sets model element which receives text found outside of
// any block.
func (r *Registry) SetDefaultBlock(name string) {
	r.defaultBlock = name
}

// DefaultBlock returns model element used for text outside of blocks.
func (r *Registry) DefaultBlock() string {
	return r.defaultBlock
}

func (r *Registry) modelElement(view string) (string, bool) {
	i := slices.IndexFunc(r.elements, func(e ElementToElement) bool { return e.View == view })
	if i < 0 {
		return "", false
	}
	return r.elements[i].Model, true
}

func (r *Registry) viewElement(model string) (string, bool) {
	i := slices.IndexFunc(r.elements, func(e ElementToElement) bool { return e.Model == model })
	if i < 0 {
		return "", false
	}
	return r.elements[i].View, true
}

func (r *Registry) stylesOf(view string) []AttributeToStyle {
	var out []AttributeToStyle
	for _, s := range r.styles {
		if s.element() == view {
			out = append(out, s)
		}
	}
	return out
}

func (r *Registry) attribute(key string) (AttributeToStyle, bool) {
	i := slices.IndexFunc(r.styles, func(s AttributeToStyle) bool { return s.Model == key })
	if i < 0 {
		return AttributeToStyle{}, false
	}
	return r.styles[i], true
}
