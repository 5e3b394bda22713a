package model

import (
	"fontcolor/utils/debug"
)

// Dump returns indented tree of the document for debugging.
func (d *Document) Dump() string {
	tw := debug.NewTreeWriter()
	dumpElement(tw, 0, d.Root)
	return tw.String()
}

func dumpElement(tw *debug.TreeWriter, depth int, el *Element) {
	if len(el.Attrs) > 0 {
		tw.Line(depth, "%s %v", el.Name, map[string]string(el.Attrs))
	} else {
		tw.Line(depth, "%s", el.Name)
	}
	for _, c := range el.Children {
		switch n := c.(type) {
		case *Text:
			tw.Run(depth+1, n.Data, n.Attrs)
		case *Element:
			dumpElement(tw, depth+1, n)
		}
	}
}
