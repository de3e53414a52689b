package sqlite

import (
	"path/filepath"
	"reflect"
	"testing"

	"docmatch/internal/domain"
)

func TestSaveAndLoadLatestRun(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	if run, err := st.LatestRun(); err != nil || run != nil {
		t.Fatalf("empty store LatestRun = %+v, %v", run, err)
	}

	first := domain.Run{TrainDir: "train", TestDir: "test", TopN: 1, Cases: []domain.Case{
		{QueryID: "q0.pdf", Matches: []domain.Match{{DocumentID: "x.pdf", Score: 0.1}}},
	}}
	second := domain.Run{TrainDir: "train", TestDir: "test2", TopN: 2, Cases: []domain.Case{
		{QueryID: "q1.pdf", Matches: []domain.Match{{DocumentID: "a.pdf", Score: 0.9}, {DocumentID: "b.pdf", Score: 0.5}}},
		{QueryID: "q2.pdf", Matches: []domain.Match{{DocumentID: "b.pdf", Score: 0.7}, {DocumentID: "a.pdf", Score: 0.0}}},
	}}
	for _, r := range []domain.Run{first, second} {
		if err := st.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	got, err := st.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if !reflect.DeepEqual(*got, second) {
		t.Fatalf("LatestRun = %+v; want %+v", *got, second)
	}
}
