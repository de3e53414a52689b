// Package summarizer picks the most representative sentences of a document
// for previews in the interactive browser.
package summarizer

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"docmatch/internal/index"
	"docmatch/internal/text"
	"docmatch/internal/tfidf"
)

// DefaultSentences is used when the caller asks for zero or fewer sentences.
const DefaultSentences = 3

var sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// FrequencySummarizer treats every sentence of a document as a small corpus
// and keeps the sentences closest to the document's overall term profile.
type FrequencySummarizer struct {
	tokenizer *text.Tokenizer
}

// NewFrequencySummarizer creates a summarizer that shares the engine's term rules.
func NewFrequencySummarizer(tok *text.Tokenizer) *FrequencySummarizer {
	if tok == nil {
		tok = text.NewTokenizer()
	}
	return &FrequencySummarizer{tokenizer: tok}
}

// Summarize returns up to maxSentences sentences in their original order.
func (s *FrequencySummarizer) Summarize(doc string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = DefaultSentences
	}
	sentences := sentenceRe.FindAllString(doc, -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(doc), nil
	}

	terms := make([][]string, len(sentences))
	var all []string
	for i, sent := range sentences {
		terms[i] = s.tokenizer.Tokenize(sent)
		all = append(all, terms[i]...)
	}
	vocab, err := tfidf.BuildVocabulary(terms)
	if errors.Is(err, tfidf.ErrEmptyVocabulary) {
		return join(sentences, firstN(len(sentences), maxSentences)), nil
	}
	if err != nil {
		return "", err
	}

	ids := make([]string, len(sentences))
	vecs := make([]tfidf.Vector, len(sentences))
	for i := range sentences {
		ids[i] = strconv.Itoa(i)
		vecs[i] = vocab.Encode(terms[i])
	}
	idx, err := index.New(ids, vecs)
	if err != nil {
		return "", err
	}

	ranked := idx.Rank(vocab.Encode(all), maxSentences)
	picked := make([]int, len(ranked))
	for i, m := range ranked {
		picked[i], _ = strconv.Atoi(m.DocumentID)
	}
	sort.Ints(picked)
	return join(sentences, picked), nil
}

func firstN(total, n int) []int {
	if n > total {
		n = total
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func join(sentences []string, picked []int) string {
	out := make([]string, 0, len(picked))
	for _, i := range picked {
		out = append(out, strings.TrimSpace(sentences[i]))
	}
	return strings.Join(out, " ")
}
