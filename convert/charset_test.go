package convert

import (
	"bytes"
	"io"
	"testing"
)

func TestNewReader(t *testing.T) {
	// "При" in windows-1251
	src := []byte{0xcf, 0xf0, 0xe8}

	r, err := NewReader(bytes.NewReader(src), "text/html; charset=windows-1251")
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "При" {
		t.Errorf("got %q", got)
	}
}

func TestNewReader_UTF8(t *testing.T) {
	r, err := NewReader(bytes.NewReader([]byte(`<p style="color:red">żółw</p>`)), "")
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	got, _ := io.ReadAll(r)
	if string(got) != `<p style="color:red">żółw</p>` {
		t.Errorf("got %q", got)
	}
}

func TestNewReaderLabel(t *testing.T) {
	r, err := NewReaderLabel("windows-1251", bytes.NewReader([]byte{0xcf, 0xf0, 0xe8}))
	if err != nil {
		t.Fatalf("NewReaderLabel() error = %v", err)
	}
	got, _ := io.ReadAll(r)
	if string(got) != "При" {
		t.Errorf("got %q", got)
	}

	if _, err := NewReaderLabel("no-such-charset", bytes.NewReader(nil)); err == nil {
		t.Error("expected error for unknown charset")
	}
}
