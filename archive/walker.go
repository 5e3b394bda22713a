// Package archive finds HTML documents inside zip archives.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// Document is an HTML file stored in archive.
type Document struct {
	Archive string
	// Name is entry path inside archive, decoded when archive was created
	// with legacy code page and walker knows which one.
	Name string
	file *zip.File
}

func (d Document) Open() (io.ReadCloser, error) {
	return d.file.Open()
}

// WalkFunc is called for every document visited by Walk. If an error is
// returned, processing stops.
type WalkFunc func(doc Document) error

// Walker visits documents in archives.
type Walker struct {
	log   *zap.Logger
	names encoding.Encoding
}

// NewWalker returns walker. When names is not nil entry names not marked as
// UTF-8 are decoded with it.
func NewWalker(names encoding.Encoding, log *zap.Logger) *Walker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Walker{log: log.Named("archive"), names: names}
}

// Walk calls walkFn for every document in the archive whose path starts
// with prefix. Archive with absolute entry paths or paths with ".."
// components is rejected as a whole.
func (w *Walker) Walk(ctx context.Context, archive, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if !IsDocument(name) {
			w.log.Debug("Skipping file, not recognized as document", zap.String("archive", archive), zap.String("file", name))
			continue
		}

		if err := walkFn(Document{Archive: archive, Name: w.decodeName(f), file: f}); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) decodeName(f *zip.File) string {
	name := f.FileHeader.Name
	if w.names == nil || !f.FileHeader.NonUTF8 {
		return name
	}
	decoded, err := w.names.NewDecoder().String(name)
	if err != nil {
		w.log.Warn("Unable to convert archive name from specified encoding", zap.String("path", name), zap.Error(err))
		return name
	}
	return decoded
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
