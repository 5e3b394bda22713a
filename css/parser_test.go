package css_test

import (
	"testing"

	"go.uber.org/zap"

	"fontcolor/css"
)

func TestParser_ParseInline(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	st := p.ParseInline("font-size: 18px;color: rgb(10, 20, 30);")
	if st.Len() != 2 {
		t.Fatalf("expected 2 declarations, got %d", st.Len())
	}

	decls := st.Declarations()
	if decls[0].Property != "font-size" || decls[1].Property != "color" {
		t.Errorf("unexpected declaration order: %q, %q", decls[0].Property, decls[1].Property)
	}

	size, ok := st.Get("font-size")
	if !ok {
		t.Fatal("expected font-size property")
	}
	if size.Value.Value != 18 || size.Value.Unit != "px" {
		t.Errorf("expected 18px, got %v%s", size.Value.Value, size.Value.Unit)
	}

	col, ok := st.Get("color")
	if !ok {
		t.Fatal("expected color property")
	}
	if col.Value.Raw != "rgb(10,20,30)" {
		t.Errorf("expected raw 'rgb(10,20,30)', got %q", col.Value.Raw)
	}
	if !col.Value.IsKeyword() {
		t.Error("function value should be stored as keyword")
	}
}

func TestParser_ParseInline_Values(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	tests := []struct {
		name    string
		style   string
		prop    string
		raw     string
		keyword string
		value   float64
		unit    string
	}{
		{name: "hex", style: "color: #fff;", prop: "color", raw: "#fff", keyword: "#fff"},
		{name: "named upper", style: "COLOR: LightGreen", prop: "color", raw: "LightGreen", keyword: "lightgreen"},
		{name: "no trailing semicolon", style: "color:#000", prop: "color", raw: "#000", keyword: "#000"},
		{name: "spaces inside function", style: "color: hsl( 200, 100% , 50% );", prop: "color", raw: "hsl( 200,100%,50% )", keyword: "hsl( 200,100%,50% )"},
		{name: "percentage", style: "line-height: 120%", prop: "line-height", raw: "120%", value: 120, unit: "%"},
		{name: "number", style: "opacity: .5", prop: "opacity", raw: ".5", value: 0.5},
		{name: "string", style: `font-family: "Open Sans"`, prop: "font-family", raw: `"Open Sans"`, keyword: "Open Sans"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := p.ParseInline(tt.style)
			d, ok := st.Get(tt.prop)
			if !ok {
				t.Fatalf("expected property %s", tt.prop)
			}
			if d.Value.Raw != tt.raw {
				t.Errorf("expected raw %q, got %q", tt.raw, d.Value.Raw)
			}
			if d.Value.Keyword != tt.keyword {
				t.Errorf("expected keyword %q, got %q", tt.keyword, d.Value.Keyword)
			}
			if d.Value.Value != tt.value {
				t.Errorf("expected value %v, got %v", tt.value, d.Value.Value)
			}
			if d.Value.Unit != tt.unit {
				t.Errorf("expected unit %q, got %q", tt.unit, d.Value.Unit)
			}
		})
	}
}

func TestParser_ParseInline_Important(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	st := p.ParseInline("color: red !important; font-weight: bold")
	d, ok := st.Get("color")
	if !ok {
		t.Fatal("expected color property")
	}
	if !d.Important {
		t.Error("expected Important flag")
	}
	if d.Value.Raw != "red" {
		t.Errorf("expected raw 'red', got %q", d.Value.Raw)
	}
	if st.String() != "color:red !important;font-weight:bold;" {
		t.Errorf("unexpected String(): %q", st.String())
	}
}

func TestParser_ParseInline_Repeated(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	st := p.ParseInline("color: red; font-size: 1em; color: blue")
	if st.Len() != 2 {
		t.Fatalf("expected 2 declarations, got %d", st.Len())
	}
	d, _ := st.Get("color")
	if d.Value.Raw != "blue" {
		t.Errorf("expected last value to win, got %q", d.Value.Raw)
	}
	if st.Declarations()[0].Property != "color" {
		t.Error("repeated property should keep its first position")
	}
}

func TestParser_ParseInline_Empty(t *testing.T) {
	p := css.NewParser(nil)

	for _, in := range []string{"", "   ", ";", "--custom: 1"} {
		if st := p.ParseInline(in); st.Len() != 0 {
			t.Errorf("ParseInline(%q) expected no declarations, got %d", in, st.Len())
		}
	}
}

func TestParser_ParseValue(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	v := p.ParseValue(" rgba( 1, 2, 3, .4 ) ")
	if v.Raw != "rgba( 1, 2, 3, .4 )" {
		t.Errorf("unexpected raw %q", v.Raw)
	}
	v = p.ParseValue("2.5em")
	if v.Value != 2.5 || v.Unit != "em" || !v.IsNumeric() {
		t.Errorf("expected numeric 2.5em, got %+v", v)
	}
	v = p.ParseValue("0")
	if !v.IsNumeric() {
		t.Error("expected '0' to be numeric")
	}
}

func TestStyle_SetDeleteString(t *testing.T) {
	var st css.Style

	st.Set(css.Declaration{Property: "Font-Size", Value: css.Value{Raw: "18px"}})
	st.Set(css.Declaration{Property: "color", Value: css.Value{Raw: "rgb(10,20,30)"}})
	if got := st.String(); got != "color:rgb(10,20,30);font-size:18px;" {
		t.Errorf("String() = %q", got)
	}

	st.Delete("FONT-SIZE")
	if got := st.String(); got != "color:rgb(10,20,30);" {
		t.Errorf("String() after delete = %q", got)
	}
	if _, ok := st.Get("font-size"); ok {
		t.Error("font-size should be deleted")
	}
	st.Delete("missing")
	if st.Len() != 1 {
		t.Errorf("Len() = %d, want 1", st.Len())
	}
}
