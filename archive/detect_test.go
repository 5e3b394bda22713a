package archive

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsArchive(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name string, data []byte) string {
		p := filepath.Join(tmpDir, name)
		if err := os.WriteFile(p, data, 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		return p
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "html file", path: write("test.html", []byte("<p>not a zip</p>")), want: false},
		{name: "zip extension but invalid content", path: write("test.zip", []byte("not a real zip file")), want: false},
		{name: "empty file", path: write("empty", nil), want: false},
		{name: "valid zip", path: createZip(t, []zipEntry{{name: "a.html", content: "<p>a</p>"}}), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsArchive(tt.path)
			if err != nil {
				t.Fatalf("IsArchive() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsArchive() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := IsArchive(filepath.Join(tmpDir, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestIsDocument(t *testing.T) {
	for name, want := range map[string]bool{
		"a.html":         true,
		"dir/b.HTM":      true,
		"c.xhtml":        true,
		"d.txt":          false,
		"html":           false,
		"archive.zip":    false,
		"dir.html/e.css": false,
	} {
		if got := IsDocument(name); got != want {
			t.Errorf("IsDocument(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNameEncoding(t *testing.T) {
	if _, err := NameEncoding("windows-1251"); err != nil {
		t.Errorf("NameEncoding(windows-1251) error = %v", err)
	}
	if _, err := NameEncoding("no-such-charset"); err == nil {
		t.Error("expected error for unknown charset")
	}
}
