// Package engine is the document similarity engine: it freezes a TF-IDF
// model of a training corpus and ranks query documents against it.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"docmatch/internal/domain"
	"docmatch/internal/index"
	"docmatch/internal/text"
	"docmatch/internal/tfidf"
)

// DefaultTopN is the number of matches returned when the caller has no preference.
const DefaultTopN = 5

// Engine is immutable after New. Query is safe for concurrent use without locking.
type Engine struct {
	tokenizer *text.Tokenizer
	vocab     *tfidf.Vocabulary
	index     *index.Index
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTokenizer replaces the default tokenizer. The same tokenizer is used
// for training and queries.
func WithTokenizer(t *text.Tokenizer) Option {
	return func(e *Engine) { e.tokenizer = t }
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New tokenizes every training document, builds the vocabulary and encodes
// the corpus index. Documents without in-vocabulary terms keep their slot
// with a zero vector. No partially built engine is ever returned.
func New(corpus *domain.Corpus, opts ...Option) (*Engine, error) {
	e := &Engine{
		tokenizer: text.NewTokenizer(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if corpus == nil || corpus.Len() == 0 {
		return nil, ErrEmptyCorpus
	}

	docs := corpus.Documents()
	tokens := make([][]string, len(docs))
	for i, d := range docs {
		tokens[i] = e.tokenizer.Tokenize(d.Content)
	}
	vocab, err := tfidf.BuildVocabulary(tokens)
	if err != nil {
		if errors.Is(err, tfidf.ErrEmptyVocabulary) {
			return nil, &EmptyVocabularyError{Documents: len(docs), Sample: truncate(docs[0].Content, sampleLimit)}
		}
		return nil, fmt.Errorf("build vocabulary: %w", err)
	}

	ids := make([]string, len(docs))
	vectors := make([]tfidf.Vector, len(docs))
	zero := 0
	for i, d := range docs {
		ids[i] = d.ID
		vectors[i] = vocab.Encode(tokens[i])
		if vectors[i].IsZero() {
			zero++
		}
	}
	idx, err := index.New(ids, vectors)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	e.vocab = vocab
	e.index = idx
	e.logger.Debug("engine built", "documents", len(docs), "vocabulary", vocab.Len(), "zero_vectors", zero)
	return e, nil
}

// Query ranks the training documents against query and returns up to topN
// matches, best first. Unknown terms are ignored; a query with no
// known terms scores every document 0 and keeps training order.
func (e *Engine) Query(query string, topN int) ([]domain.Match, error) {
	if topN < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	}
	return e.index.Rank(e.Encode(query), topN), nil
}

// Encode returns the weight vector of s under the frozen vocabulary.
func (e *Engine) Encode(s string) tfidf.Vector {
	return e.vocab.Encode(e.tokenizer.Tokenize(s))
}

// Len returns the number of indexed training documents.
func (e *Engine) Len() int { return e.index.Len() }

// VocabularySize returns the number of distinct training terms.
func (e *Engine) VocabularySize() int { return e.vocab.Len() }

// DocumentIDs returns the training document ids in index order.
func (e *Engine) DocumentIDs() []string { return e.index.IDs() }
