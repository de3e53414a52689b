// Package text turns raw document text into normalized terms.
//
// Rules are fixed: text is lower-cased, a token is a maximal run of Unicode
// letters, digits or underscores, tokens shorter than two runes are dropped,
// and English stopwords are removed. Stemming is optional and off by default.
package text

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
)

const minTokenLen = 2

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenizer splits text into terms and filters stopwords.
// It is safe for concurrent use once constructed.
type Tokenizer struct {
	stopwords map[string]struct{}
	stem      bool
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithStemming enables Snowball English stemming of every kept term.
func WithStemming(enabled bool) Option {
	return func(t *Tokenizer) { t.stem = enabled }
}

// WithExtraStopwords adds words to the default stopword set.
func WithExtraStopwords(words ...string) Option {
	return func(t *Tokenizer) {
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				t.stopwords[w] = struct{}{}
			}
		}
	}
}

// NewTokenizer creates a tokenizer with the English stopword list.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{stopwords: DefaultStopwords()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize returns the normalized terms of text in document order.
func (t *Tokenizer) Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, tok := range raw {
		if utf8.RuneCountInString(tok) < minTokenLen {
			continue
		}
		if t.IsStopword(tok) {
			continue
		}
		if t.stem {
			tok = english.Stem(tok, true)
			if tok == "" {
				continue
			}
		}
		out = append(out, tok)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsStopword reports whether the lower-cased word is filtered out.
func (t *Tokenizer) IsStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}
