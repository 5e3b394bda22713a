// Package debug has helpers for human readable dumps of internal structures.
package debug

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented dump lines, two spaces per level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Run writes quoted text followed by its attributes sorted by name:
//
//	"o b" fontColor=rgb(0,10,20)
func (tw TreeWriter) Run(depth int, text string, attrs map[string]string) {
	tw.indent(depth)
	tw.w.WriteString(strconv.Quote(text))
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		tw.w.WriteByte(' ')
		tw.w.WriteString(k)
		tw.w.WriteByte('=')
		tw.w.WriteString(encodeValue(attrs[k]))
	}
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

// encodeValue quotes attribute values only when they would be ambiguous.
func encodeValue(raw string) string {
	if raw == "" || strings.ContainsAny(raw, " \t\n\"=") {
		return strconv.Quote(raw)
	}
	return raw
}
