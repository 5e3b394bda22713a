package css

import (
	"sort"
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // CSS value text, runs of whitespace collapsed; declarations lose it around commas (e.g., "1.2em", "bold", "rgb(1,2,3)")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "bold", "#ff0000", function values
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	// handles "0"
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Declaration is a single "property: value" pair of an inline style.
type Declaration struct {
	Property  string
	Value     Value
	Important bool
}

func (d Declaration) String() string {
	var sb strings.Builder
	sb.WriteString(d.Property)
	sb.WriteByte(':')
	sb.WriteString(d.Value.Raw)
	if d.Important {
		sb.WriteString(" !important")
	}
	sb.WriteByte(';')
	return sb.String()
}

// Style is an inline style: declarations keyed by property name. Source
// order is kept, a repeated property replaces the earlier value in place.
type Style struct {
	decls []Declaration
}

// Len returns number of declarations.
func (s *Style) Len() int {
	return len(s.decls)
}

// Declarations returns declarations in source order.
func (s *Style) Declarations() []Declaration {
	return s.decls
}

// Get returns declaration for a property, property names are case-insensitive.
func (s *Style) Get(property string) (Declaration, bool) {
	if i := s.index(property); i >= 0 {
		return s.decls[i], true
	}
	return Declaration{}, false
}

// Set adds declaration or replaces value of an existing one.
func (s *Style) Set(d Declaration) {
	d.Property = strings.ToLower(d.Property)
	if i := s.index(d.Property); i >= 0 {
		s.decls[i] = d
		return
	}
	s.decls = append(s.decls, d)
}

// Delete removes declaration for a property if present.
func (s *Style) Delete(property string) {
	if i := s.index(property); i >= 0 {
		s.decls = append(s.decls[:i], s.decls[i+1:]...)
	}
}

func (s *Style) index(property string) int {
	for i := range s.decls {
		if strings.EqualFold(s.decls[i].Property, property) {
			return i
		}
	}
	return -1
}

// String returns style attribute text: declarations sorted by property name
// without spaces, e.g. "color:#000;font-size:18px;".
func (s *Style) String() string {
	decls := make([]Declaration, len(s.decls))
	copy(decls, s.decls)
	sort.SliceStable(decls, func(i, j int) bool {
		return decls[i].Property < decls[j].Property
	})

	var sb strings.Builder
	for _, d := range decls {
		sb.WriteString(d.String())
	}
	return sb.String()
}
