// Package extract turns files on disk into plain text for the engine.
package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"docmatch/internal/domain"
)

// ErrUnsupported is returned for file extensions without a registered extractor.
var ErrUnsupported = errors.New("unsupported file type")

// PlainText reads the file as UTF-8 text.
type PlainText struct{}

func (PlainText) Extract(r io.ReaderAt, size int64) (string, error) {
	data, err := io.ReadAll(io.NewSectionReader(r, 0, size))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// PDF concatenates the plain text of every page, separated by a space.
type PDF struct{}

func (PDF) Extract(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(content)
		sb.WriteString(" ")
	}
	return strings.TrimSpace(sb.String()), nil
}

// Registry selects an extractor by lower-cased file extension.
type Registry struct {
	byExt map[string]domain.Extractor
}

// NewRegistry returns a registry with the .txt and .pdf extractors.
func NewRegistry() *Registry {
	return &Registry{byExt: map[string]domain.Extractor{
		".txt": PlainText{},
		".pdf": PDF{},
	}}
}

// Register adds or replaces the extractor for ext (e.g. ".md").
func (r *Registry) Register(ext string, e domain.Extractor) {
	r.byExt[strings.ToLower(ext)] = e
}

// Restrict returns a registry limited to the given extensions.
func (r *Registry) Restrict(exts []string) (*Registry, error) {
	out := &Registry{byExt: make(map[string]domain.Extractor, len(exts))}
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e, ok := r.byExt[ext]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
		}
		out.byExt[ext] = e
	}
	return out, nil
}

// Supports reports whether path has a registered extension.
func (r *Registry) Supports(path string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ExtractFile opens path and extracts its text.
func (r *Registry) ExtractFile(path string) (string, error) {
	e, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	return e.Extract(f, info.Size())
}
