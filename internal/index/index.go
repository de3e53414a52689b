// Package index holds the frozen training vectors and ranks queries against them.
package index

import (
	"errors"
	"sort"

	"docmatch/internal/domain"
	"docmatch/internal/tfidf"
)

// Index is a brute-force cosine index over L2-normalized vectors.
// Positions follow training insertion order. There is no mutation API:
// a changed training set means a new Index.
type Index struct {
	ids     []string
	vectors []tfidf.Vector
}

// New builds an index from aligned ids and vectors. The slices are copied.
func New(ids []string, vectors []tfidf.Vector) (*Index, error) {
	if len(ids) != len(vectors) {
		return nil, errors.New("ids and vectors length mismatch")
	}
	idx := &Index{
		ids:     make([]string, len(ids)),
		vectors: make([]tfidf.Vector, len(vectors)),
	}
	copy(idx.ids, ids)
	copy(idx.vectors, vectors)
	return idx, nil
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int { return len(idx.ids) }

// At returns the id and vector stored at position i.
func (idx *Index) At(i int) (string, tfidf.Vector) { return idx.ids[i], idx.vectors[i] }

// IDs returns a copy of the document ids in index order.
func (idx *Index) IDs() []string {
	out := make([]string, len(idx.ids))
	copy(out, idx.ids)
	return out
}

// Rank scores query against every document and returns the topN best matches,
// highest score first. Equal scores keep index order. A topN larger than the
// index returns every document. Rank never mutates the index.
func (idx *Index) Rank(query tfidf.Vector, topN int) []domain.Match {
	if topN <= 0 {
		return nil
	}
	// vectors are L2-normalized, so the dot product is the cosine
	scores := make([]float64, len(idx.vectors))
	for i := range idx.vectors {
		scores[i] = clamp(tfidf.Dot(idx.vectors[i], query))
	}
	order := argsortDesc(scores)
	if topN > len(order) {
		topN = len(order)
	}
	results := make([]domain.Match, 0, topN)
	for _, j := range order[:topN] {
		results = append(results, domain.Match{DocumentID: idx.ids[j], Score: scores[j]})
	}
	return results
}

func argsortDesc(vals []float64) []int {
	idxs := make([]int, len(vals))
	for i := range vals {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return vals[idxs[a]] > vals[idxs[b]] })
	return idxs
}

// clamp absorbs rounding that can push a unit-vector cosine just past 1.
func clamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
