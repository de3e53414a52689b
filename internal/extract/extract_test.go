package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.TXT")
	if err := os.WriteFile(path, []byte("  hello world \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry()
	if !reg.Supports(path) {
		t.Fatal("registry should support .TXT")
	}
	got, err := reg.ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("got %q; want %q", got, "hello world")
	}
}

func TestUnsupported(t *testing.T) {
	reg := NewRegistry()
	if reg.Supports("x.docx") {
		t.Fatal("docx should not be supported")
	}
	if _, err := reg.ExtractFile("x.docx"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v; want ErrUnsupported", err)
	}
}

func TestRegister(t *testing.T) {
	reg := NewRegistry()
	reg.Register(".MD", PlainText{})
	if !reg.Supports("notes.md") {
		t.Fatal("registered extension not supported")
	}
}

func TestPDFInvalid(t *testing.T) {
	data := "not a pdf at all"
	if _, err := (PDF{}).Extract(strings.NewReader(data), int64(len(data))); err == nil {
		t.Fatal("expected error for invalid pdf")
	}
}

func TestRestrict(t *testing.T) {
	reg, err := NewRegistry().Restrict([]string{"PDF"})
	if err != nil {
		t.Fatalf("Restrict: %v", err)
	}
	if !reg.Supports("a.pdf") || reg.Supports("a.txt") {
		t.Fatal("restricted registry supports the wrong extensions")
	}
	if _, err := NewRegistry().Restrict([]string{".doc"}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v; want ErrUnsupported", err)
	}
}
