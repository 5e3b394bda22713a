//go:build windows

package config

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

const reservedChars = `<>":/\|?*`

// CleanFileName removes characters Windows does not allow in file names.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym == 0 || sym == os.PathSeparator || sym == os.PathListSeparator || strings.ContainsRune(reservedChars, sym) {
			return -1
		}
		return sym
	}, in)
	if len(out) == 0 {
		return "_bad_file_name_"
	}
	return out
}

// EnableColorOutput checks if colorized output is possible and turns on
// VT100 sequence processing in Windows 10+ console.
func EnableColorOutput(stream *os.File) bool {
	if !modernConsole() || !term.IsTerminal(int(stream.Fd())) {
		return false
	}

	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}

func modernConsole() bool {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	return err == nil && v >= 10
}
