package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// signature bytes filetype matchers look at
const headerSize = 262

// IsArchive reports whether file at path is a zip archive, judging by its
// content rather than by extension.
func IsArchive(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// IsDocument reports whether name has HTML extension.
func IsDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// NameEncoding looks up IANA character set used for entry names of old
// archives.
func NameEncoding(charset string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("character set %q is not supported", charset)
	}
	return enc, nil
}
