package domain

import (
	"errors"
	"fmt"
	"io"
)

// ErrDuplicateDocument is returned when a corpus already holds a document with the same ID.
var ErrDuplicateDocument = errors.New("duplicate document id")

// Document represents a single reference or query document after text extraction.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Match is a training document ranked against a query, with its cosine score.
type Match struct {
	DocumentID string  `json:"document_id"`
	Score      float64 `json:"score"`
}

// Corpus is an insertion-ordered set of documents keyed by ID.
// Order is significant: it decides index positions and tie-breaks.
type Corpus struct {
	docs []Document
	pos  map[string]int
}

// NewCorpus creates an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{pos: make(map[string]int)}
}

// Add appends a document. Empty IDs and duplicates are rejected.
func (c *Corpus) Add(doc Document) error {
	if doc.ID == "" {
		return errors.New("document id must not be empty")
	}
	if _, ok := c.pos[doc.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDocument, doc.ID)
	}
	c.pos[doc.ID] = len(c.docs)
	c.docs = append(c.docs, doc)
	return nil
}

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.docs) }

// At returns the i-th document in insertion order.
func (c *Corpus) At(i int) Document { return c.docs[i] }

// Get looks a document up by ID.
func (c *Corpus) Get(id string) (Document, bool) {
	i, ok := c.pos[id]
	if !ok {
		return Document{}, false
	}
	return c.docs[i], true
}

// Documents returns a copy of the documents in insertion order.
func (c *Corpus) Documents() []Document {
	out := make([]Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Extractor turns a file into plain text.
type Extractor interface {
	Extract(r io.ReaderAt, size int64) (string, error)
}

// MatchStore records the results of a matching run.
type MatchStore interface {
	SaveRun(run Run) error
	Close() error
}

// Run is one batch of queries against a training set.
type Run struct {
	TrainDir string
	TestDir  string
	TopN     int
	Cases    []Case
}

// Case holds the ranked matches of a single query document.
type Case struct {
	QueryID string  `json:"query"`
	Matches []Match `json:"matches"`
}
