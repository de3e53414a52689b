package index

import (
	"math"
	"sync"
	"testing"

	"docmatch/internal/tfidf"
)

func unit(indices []int, values []float64) tfidf.Vector {
	v := tfidf.Vector{Indices: indices, Values: values}
	n := v.Norm()
	for i := range v.Values {
		v.Values[i] /= n
	}
	return v
}

func TestNewLengthMismatch(t *testing.T) {
	if _, err := New([]string{"a"}, nil); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestRankOrderAndTies(t *testing.T) {
	same := unit([]int{0, 1}, []float64{1, 1})
	idx, err := New(
		[]string{"zeta", "alpha", "beta", "empty"},
		[]tfidf.Vector{
			unit([]int{2}, []float64{1}),
			same,
			same,
			{},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	got := idx.Rank(unit([]int{0, 1}, []float64{1, 1}), 10)
	if len(got) != 4 {
		t.Fatalf("got %d results; want 4", len(got))
	}
	wantIDs := []string{"alpha", "beta", "zeta", "empty"}
	for i, id := range wantIDs {
		if got[i].DocumentID != id {
			t.Fatalf("result %d = %q; want %q (all: %+v)", i, got[i].DocumentID, id, got)
		}
	}
	if math.Abs(got[0].Score-1) > 1e-9 || got[0].Score != got[1].Score {
		t.Fatalf("tied scores = %v, %v", got[0].Score, got[1].Score)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("scores not non-increasing: %+v", got)
		}
	}
}

func TestRankTopN(t *testing.T) {
	idx, _ := New([]string{"a", "b", "c"}, []tfidf.Vector{{}, {}, {}})
	if got := idx.Rank(tfidf.Vector{}, 2); len(got) != 2 {
		t.Fatalf("topN=2 returned %d", len(got))
	}
	got := idx.Rank(tfidf.Vector{}, 50)
	if len(got) != 3 {
		t.Fatalf("topN > size returned %d; want 3", len(got))
	}
	for i, id := range []string{"a", "b", "c"} {
		if got[i].DocumentID != id || got[i].Score != 0 {
			t.Fatalf("zero query result %d = %+v", i, got[i])
		}
	}
	if got := idx.Rank(tfidf.Vector{}, 0); got != nil {
		t.Fatalf("topN=0 returned %+v", got)
	}
}

func TestRankConcurrent(t *testing.T) {
	idx, _ := New(
		[]string{"a", "b"},
		[]tfidf.Vector{unit([]int{0}, []float64{1}), unit([]int{0, 1}, []float64{1, 2})},
	)
	q := unit([]int{1}, []float64{1})
	want := idx.Rank(q, 2)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := idx.Rank(q, 2)
			if got[0] != want[0] || got[1] != want[1] {
				t.Errorf("concurrent rank = %+v; want %+v", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestClamp(t *testing.T) {
	if clamp(1+1e-15) != 1 || clamp(-1e-15) != 0 || clamp(0.5) != 0.5 {
		t.Fatal("clamp out of range")
	}
}
