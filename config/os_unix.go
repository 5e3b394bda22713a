//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// CleanFileName removes path separators and leading dots from file name.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym == os.PathSeparator || sym == os.PathListSeparator {
			return -1
		}
		return sym
	}, in)
	if out = strings.TrimLeft(out, "."); len(out) == 0 {
		return "_bad_file_name_"
	}
	return out
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
