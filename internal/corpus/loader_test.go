package corpus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"docmatch/internal/extract"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadOrderAndSkips(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"c.txt":     "cherry",
		"a.txt":     "apple",
		"b.txt":     "   ",
		"d.txt":     "durian",
		"notes.csv": "ignored",
	})
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(extract.NewRegistry(), 3, quietLogger())
	res, err := l.Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var ids []string
	for _, d := range res.Corpus.Documents() {
		ids = append(ids, d.ID)
	}
	if want := []string{"a.txt", "c.txt", "d.txt"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids = %v; want %v", ids, want)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].File != "b.txt" || !errors.Is(res.Skipped[0].Err, ErrEmptyContent) {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	doc, ok := res.Corpus.Get("c.txt")
	if !ok || doc.Content != "cherry" || doc.Path != filepath.Join(dir, "c.txt") {
		t.Fatalf("Get(c.txt) = %+v, %v", doc, ok)
	}
}

type flakySource struct{}

func (flakySource) Supports(string) bool { return true }

func (flakySource) ExtractFile(path string) (string, error) {
	if filepath.Base(path) == "bad.pdf" {
		return "", errors.New("corrupt xref table")
	}
	return "content of " + filepath.Base(path), nil
}

func TestLoadIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"bad.pdf": "", "good.pdf": "", "zz.pdf": ""})
	res, err := NewLoader(flakySource{}, 2, quietLogger()).Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Corpus.Len() != 2 || len(res.Skipped) != 1 || res.Skipped[0].File != "bad.pdf" {
		t.Fatalf("corpus=%d skipped=%+v", res.Corpus.Len(), res.Skipped)
	}
}

func TestLoadPathErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	writeFiles(t, dir, map[string]string{"f.txt": "x"})

	l := NewLoader(extract.NewRegistry(), 1, quietLogger())
	if _, err := l.Load(context.Background(), file); !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("file path err = %v; want ErrNotDirectory", err)
	}
	if _, err := l.Load(context.Background(), filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing path err = %v; want ErrNotExist", err)
	}
}

func TestLoadCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "apple"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader(extract.NewRegistry(), 1, quietLogger()).Load(ctx, dir); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want context.Canceled", err)
	}
}

func TestLoadEmptyDir(t *testing.T) {
	res, err := NewLoader(extract.NewRegistry(), 0, quietLogger()).Load(context.Background(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if res.Corpus.Len() != 0 {
		t.Fatalf("corpus len = %d", res.Corpus.Len())
	}
}
