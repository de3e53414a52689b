package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"docmatch/internal/domain"
)

type fakePort struct {
	err   error
	calls []int
}

func (f *fakePort) Query(q string, topN int) ([]domain.Match, error) {
	f.calls = append(f.calls, topN)
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Match{{DocumentID: "a.pdf", Score: 0.9}, {DocumentID: "b.pdf", Score: 0.1}}, nil
}

func (f *fakePort) Document(id string) (domain.Document, bool) {
	return domain.Document{ID: id, Content: "Body of " + id + "."}, true
}

type upperSummarizer struct{}

func (upperSummarizer) Summarize(doc string, n int) (string, error) {
	return strings.ToUpper(doc), nil
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeQuery(m Model, q string) Model {
	for _, r := range q {
		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return send(m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestEnterRunsQuery(t *testing.T) {
	port := &fakePort{}
	m := send(New(port, nil, "3 documents", 7, 2), tea.WindowSizeMsg{Width: 80, Height: 30})
	m = typeQuery(m, "apple")

	if len(port.calls) != 1 || port.calls[0] != 7 {
		t.Fatalf("Query calls = %v; want one call with topN 7", port.calls)
	}
	if len(m.results) != 2 || !strings.Contains(m.status, "2 matches") {
		t.Fatalf("results=%v status=%q", m.results, m.status)
	}
	if !strings.Contains(m.renderResults(), "Body of a.pdf.") {
		t.Fatalf("preview missing: %q", m.renderResults())
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d; want 1", m.cursor)
	}
	if send(m, tea.KeyMsg{Type: tea.KeyDown}).cursor != 0 {
		t.Fatal("cursor should wrap forward")
	}
	if send(send(m, tea.KeyMsg{Type: tea.KeyUp}), tea.KeyMsg{Type: tea.KeyUp}).cursor != 1 {
		t.Fatal("cursor should wrap backward")
	}
}

func TestEmptyInputDoesNotQuery(t *testing.T) {
	port := &fakePort{}
	typeQuery(New(port, nil, "", 5, 2), "   ")
	if len(port.calls) != 0 {
		t.Fatalf("Query called %d times for blank input", len(port.calls))
	}
}

func TestTabTogglesSummary(t *testing.T) {
	m := typeQuery(New(&fakePort{}, upperSummarizer{}, "", 5, 2), "apple")
	if !strings.Contains(m.renderResults(), "BODY OF A.PDF.") {
		t.Fatalf("summary not shown: %q", m.renderResults())
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.renderResults(), "Body of a.pdf.") {
		t.Fatalf("full text not shown: %q", m.renderResults())
	}
}

func TestQueryErrorShownInStatus(t *testing.T) {
	m := typeQuery(New(&fakePort{err: errors.New("boom")}, nil, "", 5, 2), "x")
	if m.results != nil || !m.failed || !strings.Contains(m.status, "boom") {
		t.Fatalf("status=%q results=%v", m.status, m.results)
	}
}

func TestViewBeforeResize(t *testing.T) {
	if got := New(&fakePort{}, nil, "", 5, 2).View(); got != "Loading..." {
		t.Fatalf("View = %q", got)
	}
}

func TestAbbreviate(t *testing.T) {
	if got := abbreviate("héllo world", 5); got != "héllo…" {
		t.Fatalf("abbreviate = %q", got)
	}
	if got := abbreviate("short", 10); got != "short" {
		t.Fatalf("abbreviate = %q", got)
	}
}
