package archive

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/charmap"
)

type zipEntry struct {
	name    string
	content string
	nonUTF8 bool
}

func createZip(t *testing.T, entries []zipEntry) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: e.name, Method: zip.Deflate, NonUTF8: e.nonUTF8})
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return zipPath
}

func TestWalker_Walk(t *testing.T) {
	zipPath := createZip(t, []zipEntry{
		{name: "docs/readme.html", content: "<p>readme</p>"},
		{name: "docs/guide.htm", content: "<p>guide</p>"},
		{name: "docs/notes.txt", content: "notes"},
		{name: "src/page.xhtml", content: "<p>page</p>"},
		{name: "index.HTML", content: "<p>index</p>"},
	})
	w := NewWalker(nil, zaptest.NewLogger(t))

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{name: "docs prefix", prefix: "docs/", want: []string{"docs/readme.html", "docs/guide.htm"}},
		{name: "src prefix", prefix: "src/", want: []string{"src/page.xhtml"}},
		{name: "everything", prefix: "", want: []string{"docs/readme.html", "docs/guide.htm", "src/page.xhtml", "index.HTML"}},
		{name: "prefix is case sensitive", prefix: "Docs/", want: nil},
		{name: "no match", prefix: "nonexistent/", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := w.Walk(context.Background(), zipPath, tt.prefix, func(doc Document) error {
				if doc.Archive != zipPath {
					t.Errorf("archive = %s, want %s", doc.Archive, zipPath)
				}
				visited = append(visited, doc.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if len(visited) != len(tt.want) {
				t.Fatalf("visited %v, want %v", visited, tt.want)
			}
			for i := range tt.want {
				if visited[i] != tt.want[i] {
					t.Errorf("visited[%d] = %s, want %s", i, visited[i], tt.want[i])
				}
			}
		})
	}
}

func TestWalker_Content(t *testing.T) {
	zipPath := createZip(t, []zipEntry{{name: "a.html", content: "<p>test content</p>"}})

	err := NewWalker(nil, nil).Walk(context.Background(), zipPath, "", func(doc Document) error {
		rc, err := doc.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		if string(data) != "<p>test content</p>" {
			t.Errorf("content = %s", data)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}
}

func TestWalker_EarlyTermination(t *testing.T) {
	var entries []zipEntry
	for i := range 5 {
		entries = append(entries, zipEntry{name: "files/file" + string(rune('0'+i)) + ".html", content: "x"})
	}
	zipPath := createZip(t, entries)

	var visited int
	stopErr := errors.New("stop walking")
	err := NewWalker(nil, nil).Walk(context.Background(), zipPath, "files/", func(Document) error {
		visited++
		if visited == 2 {
			return stopErr
		}
		return nil
	})
	if !errors.Is(err, stopErr) {
		t.Errorf("Walk() error = %v, want %v", err, stopErr)
	}
	if visited != 2 {
		t.Errorf("visited %d files, want 2", visited)
	}
}

func TestWalker_Cancelled(t *testing.T) {
	zipPath := createZip(t, []zipEntry{{name: "a.html", content: "x"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewWalker(nil, nil).Walk(ctx, zipPath, "", func(Document) error {
		t.Error("walkFn should not be called")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Walk() error = %v, want context.Canceled", err)
	}
}

func TestWalker_Errors(t *testing.T) {
	w := NewWalker(nil, nil)
	noop := func(Document) error { return nil }

	t.Run("missing archive", func(t *testing.T) {
		if err := w.Walk(context.Background(), filepath.Join(t.TempDir(), "missing.zip"), "", noop); err == nil {
			t.Error("expected error for missing archive")
		}
	})

	t.Run("invalid archive", func(t *testing.T) {
		invalid := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(invalid, []byte("not a zip file"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := w.Walk(context.Background(), invalid, "", noop); err == nil {
			t.Error("expected error for invalid archive")
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		zipPath := createZip(t, []zipEntry{{name: "../evil.html", content: "x"}})
		if err := w.Walk(context.Background(), zipPath, "", noop); err == nil {
			t.Error("expected error for unsafe entry")
		}
	})
}

func TestWalker_NameEncoding(t *testing.T) {
	// "Привет.html" in cp866
	name := string([]byte{0x8f, 0xe0, 0xa8, 0xa2, 0xa5, 0xe2}) + ".html"
	zipPath := createZip(t, []zipEntry{{name: name, content: "x", nonUTF8: true}})

	var got string
	err := NewWalker(charmap.CodePage866, nil).Walk(context.Background(), zipPath, "", func(doc Document) error {
		got = doc.Name
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if got != "Привет.html" {
		t.Errorf("Name = %q, want %q", got, "Привет.html")
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"file.html", true},
		{"dir/file.html", true},
		{"dir..name/file.html", true},
		{"../file.html", false},
		{"dir/../../file.html", false},
		{"/etc/passwd", false},
		{`\windows\file.html`, false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
