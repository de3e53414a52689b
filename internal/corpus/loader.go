// Package corpus loads a directory of documents into an ordered domain.Corpus.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"docmatch/internal/domain"
)

var (
	// ErrNotDirectory is returned when the path exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrEmptyContent marks a document whose extracted text is empty.
	ErrEmptyContent = errors.New("empty content")
)

// TextSource extracts text from files it supports.
type TextSource interface {
	Supports(path string) bool
	ExtractFile(path string) (string, error)
}

// Skipped is a document left out of the corpus, with the reason.
type Skipped struct {
	File string
	Err  error
}

// Result is a loaded corpus plus the documents that were skipped.
type Result struct {
	Corpus  *domain.Corpus
	Skipped []Skipped
}

// Loader extracts every supported file of a directory on a bounded worker pool.
type Loader struct {
	source  TextSource
	workers int
	logger  *slog.Logger
}

// NewLoader creates a loader; workers < 1 means one worker.
func NewLoader(source TextSource, workers int, logger *slog.Logger) *Loader {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{source: source, workers: workers, logger: logger}
}

// Load reads dir (non-recursively). Files are extracted in parallel, but the
// corpus is assembled in file-name order so document positions are stable.
// A file that fails to extract or yields empty text is skipped with a warning
// and does not abort the others. Only directory errors and cancellation fail
// the whole load.
func (l *Loader) Load(ctx context.Context, dir string) (*Result, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("access %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", abs, err)
	}

	// os.ReadDir returns entries sorted by name
	var names []string
	for _, e := range entries {
		if e.IsDir() || !l.source.Supports(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}

	type slot struct {
		content string
		err     error
	}
	slots := make([]slot, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := l.source.ExtractFile(filepath.Join(abs, name))
			if err == nil && content == "" {
				err = ErrEmptyContent
			}
			slots[i] = slot{content: content, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Corpus: domain.NewCorpus()}
	for i, name := range names {
		i, name := i, name
		if slots[i].err != nil {
			l.logger.Warn("skipping document", "file", name, "error", slots[i].err)
			res.Skipped = append(res.Skipped, Skipped{File: name, Err: slots[i].err})
			continue
		}
		doc := domain.Document{ID: name, Path: filepath.Join(abs, name), Content: slots[i].content}
		if err := res.Corpus.Add(doc); err != nil {
			return nil, err
		}
	}
	if res.Corpus.Len() == 0 {
		l.logger.Warn("no valid documents found", "dir", abs)
	}
	return res, nil
}
