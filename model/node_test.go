package model_test

import (
	"testing"

	"fontcolor/model"
)

func paragraph(t *testing.T, data string) *model.Element {
	t.Helper()
	doc, err := model.Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", data, err)
	}
	block, err := doc.Block(0)
	if err != nil {
		t.Fatalf("Block(0) error = %v", err)
	}
	return block
}

func TestElement_AppendText(t *testing.T) {
	p := model.NewElement("paragraph")
	p.AppendText("fo", nil)
	p.AppendText("o", model.Attributes{})
	p.AppendText("", model.Attributes{"fontColor": "red"})
	p.AppendText(" b", model.Attributes{"fontColor": "red"})
	p.AppendText("ar", model.Attributes{"fontColor": "red"})

	if len(p.Children) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(p.Children))
	}
	if got := p.Children[0].(*model.Text).Data; got != "foo" {
		t.Errorf("first run = %q, want %q", got, "foo")
	}
	if got := p.Children[1].(*model.Text).Data; got != " bar" {
		t.Errorf("second run = %q, want %q", got, " bar")
	}
	if p.Text() != "foo bar" {
		t.Errorf("Text() = %q", p.Text())
	}
	if p.Len() != 7 {
		t.Errorf("Len() = %d, want 7", p.Len())
	}
}

func TestElement_AppendText_CopiesAttributes(t *testing.T) {
	attrs := model.Attributes{"fontColor": "red"}
	p := model.NewElement("paragraph")
	p.AppendText("x", attrs)
	attrs["fontColor"] = "blue"

	if v, _ := p.AttributeAt(0, "fontColor"); v != "red" {
		t.Errorf("attribute changed through caller map: %q", v)
	}
}

func TestElement_SetAttribute(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		start, end int
		value      string
		want       string
	}{
		{
			name: "middle of plain text",
			data: "<paragraph>foo bar</paragraph>",
			start: 2, end: 5, value: "#000",
			want: `<paragraph>fo<$text fontColor="#000">o b</$text>ar</paragraph>`,
		},
		{
			name: "whole text",
			data: "<paragraph>foo</paragraph>",
			start: 0, end: 3, value: "red",
			want: `<paragraph><$text fontColor="red">foo</$text></paragraph>`,
		},
		{
			name: "merges with neighbour",
			data: `<paragraph>fo<$text fontColor="red">o</$text> bar</paragraph>`,
			start: 3, end: 5, value: "red",
			want: `<paragraph>fo<$text fontColor="red">o b</$text>ar</paragraph>`,
		},
		{
			name: "overrides existing",
			data: `<paragraph><$text fontColor="red">foo</$text></paragraph>`,
			start: 1, end: 2, value: "blue",
			want: `<paragraph><$text fontColor="red">f</$text><$text fontColor="blue">o</$text><$text fontColor="red">o</$text></paragraph>`,
		},
		{
			name: "keeps other attributes",
			data: `<paragraph><$text bold="true">foo</$text></paragraph>`,
			start: 0, end: 1, value: "red",
			want: `<paragraph><$text bold="true" fontColor="red">f</$text><$text bold="true">oo</$text></paragraph>`,
		},
		{
			name: "empty value removes",
			data: `<paragraph><$text fontColor="red">foo</$text></paragraph>`,
			start: 0, end: 2, value: "",
			want: `<paragraph>fo<$text fontColor="red">o</$text></paragraph>`,
		},
		{
			name: "collapsed range",
			data: "<paragraph>foo</paragraph>",
			start: 1, end: 1, value: "red",
			want: "<paragraph>foo</paragraph>",
		},
		{
			name: "multibyte characters",
			data: "<paragraph>żółw</paragraph>",
			start: 1, end: 3, value: "red",
			want: `<paragraph>ż<$text fontColor="red">ół</$text>w</paragraph>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := model.Parse(tt.data, nil)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			block, _ := doc.Block(0)
			if err := block.SetAttribute(tt.start, tt.end, "fontColor", tt.value); err != nil {
				t.Fatalf("SetAttribute() error = %v", err)
			}
			if got := model.Stringify(doc); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestElement_SetAttribute_OutOfBounds(t *testing.T) {
	p := paragraph(t, "<paragraph>foo</paragraph>")

	for _, r := range [][2]int{{-1, 1}, {2, 1}, {0, 4}} {
		if err := p.SetAttribute(r[0], r[1], "fontColor", "red"); err == nil {
			t.Errorf("SetAttribute(%d, %d) expected error", r[0], r[1])
		}
	}
}

func TestElement_RemoveAttribute(t *testing.T) {
	p := paragraph(t, `<paragraph><$text fontColor="red">foo</$text></paragraph>`)
	if err := p.RemoveAttribute(0, 3, "fontColor"); err != nil {
		t.Fatalf("RemoveAttribute() error = %v", err)
	}
	if len(p.Children) != 1 {
		t.Fatalf("expected single run, got %d", len(p.Children))
	}
	if attrs := p.Children[0].(*model.Text).Attrs; len(attrs) != 0 {
		t.Errorf("expected no attributes, got %v", attrs)
	}
}

func TestElement_AttributeAt(t *testing.T) {
	p := paragraph(t, `<paragraph>fo<$text fontColor="red">o</$text></paragraph>`)

	tests := []struct {
		offset int
		want   string
		ok     bool
	}{
		{0, "", false},
		{1, "", false},
		{2, "red", true},
		{3, "", false},
		{-1, "", false},
	}
	for _, tt := range tests {
		got, ok := p.AttributeAt(tt.offset, "fontColor")
		if got != tt.want || ok != tt.ok {
			t.Errorf("AttributeAt(%d) = %q, %v; want %q, %v", tt.offset, got, ok, tt.want, tt.ok)
		}
	}
}

func TestElement_Normalize(t *testing.T) {
	p := &model.Element{Name: "paragraph", Children: []model.Node{
		&model.Text{Data: "a"},
		&model.Text{Data: ""},
		&model.Text{Data: "b", Attrs: model.Attributes{}},
		&model.Text{Data: "c", Attrs: model.Attributes{"fontColor": "red"}},
		&model.Text{Data: "d", Attrs: model.Attributes{"fontColor": "red"}},
	}}
	p.Normalize()

	if len(p.Children) != 2 {
		t.Fatalf("expected 2 runs after normalize, got %d", len(p.Children))
	}
	if got := p.Children[0].(*model.Text).Data; got != "ab" {
		t.Errorf("first run = %q", got)
	}
	if got := p.Children[1].(*model.Text).Data; got != "cd" {
		t.Errorf("second run = %q", got)
	}
}

func TestAttributes(t *testing.T) {
	var empty model.Attributes
	if empty.Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
	if !empty.Equal(model.Attributes{}) {
		t.Error("nil and empty attributes should be equal")
	}

	a := model.Attributes{"z": "1", "a": "2", "m": "3"}
	keys := a.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "m" || keys[2] != "z" {
		t.Errorf("Keys() = %v", keys)
	}
	b := a.Clone()
	b["a"] = "changed"
	if a["a"] != "2" {
		t.Error("Clone() shares storage")
	}
	if a.Equal(b) {
		t.Error("different attributes reported equal")
	}
}

func TestDocument_Block(t *testing.T) {
	doc, err := model.Parse("<paragraph>a</paragraph><paragraph>b</paragraph>", nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	b, err := doc.Block(1)
	if err != nil {
		t.Fatalf("Block(1) error = %v", err)
	}
	if b.Text() != "b" {
		t.Errorf("Block(1).Text() = %q", b.Text())
	}
	if _, err := doc.Block(2); err == nil {
		t.Error("Block(2) expected error")
	}
}
