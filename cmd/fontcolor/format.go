package main

import (
	"errors"
	"fmt"
	"strings"
)

// Output of convert command.
type outputFormat int

const (
	formatHTML outputFormat = iota // normalized HTML
	formatText                     // model data
	formatXML                      // model as XML
	formatTree                     // indented model tree
)

var errInvalidFormat = errors.New("not a valid output format")

var formatNameMap = map[outputFormat]string{
	formatHTML: "html",
	formatText: "text",
	formatXML:  "xml",
	formatTree: "tree",
}

func formatNames() []string {
	return []string{formatHTML.String(), formatText.String(), formatXML.String(), formatTree.String()}
}

func (f outputFormat) String() string {
	if s, ok := formatNameMap[f]; ok {
		return s
	}
	return fmt.Sprintf("outputFormat(%d)", f)
}

func parseOutputFormat(name string) (outputFormat, error) {
	for f, s := range formatNameMap {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return formatHTML, fmt.Errorf("%s is %w, try [%s]", name, errInvalidFormat, strings.Join(formatNames(), ", "))
}

func (f outputFormat) ext() string {
	switch f {
	case formatHTML:
		return ".html"
	case formatText:
		return ".txt"
	case formatXML:
		return ".xml"
	case formatTree:
		return ".tree.txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
