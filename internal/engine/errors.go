package engine

import (
	"errors"
	"fmt"

	"docmatch/internal/tfidf"
)

var (
	// ErrEmptyCorpus is returned when the training corpus has no documents.
	ErrEmptyCorpus = errors.New("empty training corpus")
	// ErrEmptyVocabulary matches *EmptyVocabularyError via errors.Is.
	ErrEmptyVocabulary = tfidf.ErrEmptyVocabulary
	// ErrInvalidTopN is returned by Query when topN < 1.
	ErrInvalidTopN = errors.New("top_n must be at least 1")
)

const sampleLimit = 200

// EmptyVocabularyError reports a training corpus that produced no terms
// after stopword removal, with enough context to diagnose the input.
type EmptyVocabularyError struct {
	Documents int
	Sample    string
}

func (e *EmptyVocabularyError) Error() string {
	return fmt.Sprintf("empty vocabulary: %d training documents yield no terms after stopword removal (sample: %q)", e.Documents, e.Sample)
}

func (e *EmptyVocabularyError) Unwrap() error { return ErrEmptyVocabulary }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
