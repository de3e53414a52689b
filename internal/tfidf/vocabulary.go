// Package tfidf builds a frozen vocabulary from a training corpus and encodes
// term sequences into L2-normalized TF-IDF vectors.
package tfidf

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyVocabulary is returned when the training documents yield no terms.
var ErrEmptyVocabulary = errors.New("empty vocabulary")

// Vocabulary maps terms to indices and carries the document frequencies and
// smoothed idf weights of the training corpus. It is immutable after
// BuildVocabulary returns, so it can be shared by concurrent encoders.
type Vocabulary struct {
	index     map[string]int
	terms     []string
	df        []int
	idf       []float64
	documents int
}

// BuildVocabulary collects the distinct terms of every training document.
// Terms are indexed in sorted order so the mapping is reproducible.
// Document frequency counts documents, not occurrences.
func BuildVocabulary(docs [][]string) (*Vocabulary, error) {
	df := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &Vocabulary{
		index:     make(map[string]int, len(terms)),
		terms:     terms,
		df:        make([]int, len(terms)),
		idf:       make([]float64, len(terms)),
		documents: len(docs),
	}
	n := float64(len(docs))
	for i, term := range terms {
		v.index[term] = i
		v.df[i] = df[term]
		// smoothed: always > 0, finite for terms present in every document
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	return v, nil
}

// Len returns the number of distinct terms.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Documents returns the number of training documents the vocabulary was built from.
func (v *Vocabulary) Documents() int { return v.documents }

// Index returns the index of term, if present.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Term returns the term stored at index i.
func (v *Vocabulary) Term(i int) string { return v.terms[i] }

// DocFreq returns the number of training documents containing the term at index i.
func (v *Vocabulary) DocFreq(i int) int { return v.df[i] }

// IDF returns the inverse document frequency of the term at index i.
func (v *Vocabulary) IDF(i int) float64 { return v.idf[i] }

// Encode computes the L2-normalized TF-IDF vector of a term sequence.
// Term frequency is the raw count. Terms outside the vocabulary are ignored;
// this is part of the contract, not an error. A sequence with no known terms
// yields the zero vector.
func (v *Vocabulary) Encode(terms []string) Vector {
	tf := make(map[int]int)
	for _, term := range terms {
		if idx, ok := v.index[term]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return Vector{}
	}
	indices := make([]int, 0, len(tf))
	for idx := range tf {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	norm := 0.0
	for k, idx := range indices {
		w := float64(tf[idx]) * v.idf[idx]
		values[k] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return Vector{}
	}
	for k := range values {
		values[k] /= norm
	}
	return Vector{Indices: indices, Values: values}
}
