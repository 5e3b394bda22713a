package convert

import (
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// NewReader returns reader converting HTML input to UTF-8. Encoding is
// detected from BOM, <meta> declarations or contentType (may be empty).
func NewReader(r io.Reader, contentType string) (io.Reader, error) {
	cr, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("unable to detect input encoding: %w", err)
	}
	return cr, nil
}

// NewReaderLabel returns reader converting input in the named encoding
// (see IANA character set names) to UTF-8.
func NewReaderLabel(label string, r io.Reader) (io.Reader, error) {
	cr, err := charset.NewReaderLabel(label, r)
	if err != nil {
		return nil, fmt.Errorf("unable to use input encoding %q: %w", label, err)
	}
	return cr, nil
}
