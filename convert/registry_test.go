package convert

import (
	"testing"
)

func TestRegistry_ElementToElement(t *testing.T) {
	r := NewRegistry()
	if err := r.ElementToElement(ElementToElement{Model: "paragraph", View: "p"}); err != nil {
		t.Fatalf("ElementToElement() error = %v", err)
	}

	tests := []struct {
		name string
		conv ElementToElement
	}{
		{"same model", ElementToElement{Model: "paragraph", View: "div"}},
		{"same view", ElementToElement{Model: "heading", View: "p"}},
		{"no view", ElementToElement{Model: "heading"}},
		{"no model", ElementToElement{View: "h1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.ElementToElement(tt.conv); err == nil {
				t.Error("expected error")
			}
		})
	}

	if m, ok := r.modelElement("p"); !ok || m != "paragraph" {
		t.Errorf("modelElement(p) = %q, %v", m, ok)
	}
	if v, ok := r.viewElement("paragraph"); !ok || v != "p" {
		t.Errorf("viewElement(paragraph) = %q, %v", v, ok)
	}
	if _, ok := r.modelElement("div"); ok {
		t.Error("unexpected converter for div")
	}
}

func TestRegistry_AttributeToStyle(t *testing.T) {
	r := NewRegistry()
	if err := r.AttributeToStyle(AttributeToStyle{Model: "fontColor", Style: "color"}); err != nil {
		t.Fatalf("AttributeToStyle() error = %v", err)
	}
	if err := r.AttributeToStyle(AttributeToStyle{Model: "highlight", Element: "mark", Style: "color"}); err != nil {
		t.Fatalf("same style on another element should be accepted: %v", err)
	}

	bad := []AttributeToStyle{
		{Model: "fontColor", Style: "background-color"},
		{Model: "other", Element: "span", Style: "color"},
		{Model: "", Style: "color"},
		{Model: "fontSize"},
	}
	for _, c := range bad {
		if err := r.AttributeToStyle(c); err == nil {
			t.Errorf("AttributeToStyle(%+v) expected error", c)
		}
	}

	if got := len(r.stylesOf("span")); got != 1 {
		t.Errorf("stylesOf(span) returned %d converters", got)
	}
	if got := len(r.stylesOf("mark")); got != 1 {
		t.Errorf("stylesOf(mark) returned %d converters", got)
	}
	c, ok := r.attribute("fontColor")
	if !ok || c.element() != "span" {
		t.Errorf("attribute(fontColor) = %+v, %v", c, ok)
	}
}

func TestAttributeToStyle_DefaultConversions(t *testing.T) {
	c := AttributeToStyle{Model: "fontColor", Style: "color"}
	if v, ok := c.upcast("red"); !ok || v != "red" {
		t.Errorf("upcast(red) = %q, %v", v, ok)
	}
	if _, ok := c.upcast(""); ok {
		t.Error("empty value should not be accepted")
	}
	if v := c.downcast("red"); v != "red" {
		t.Errorf("downcast(red) = %q", v)
	}
}

func TestRegistry_DefaultBlock(t *testing.T) {
	r := NewRegistry()
	if r.DefaultBlock() != "" {
		t.Error("new registry should have no default block")
	}
	r.SetDefaultBlock("paragraph")
	if r.DefaultBlock() != "paragraph" {
		t.Errorf("DefaultBlock() = %q", r.DefaultBlock())
	}
}
