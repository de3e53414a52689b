package summarizer

import (
	"strings"
	"testing"
)

func TestSummarizeKeepsOriginalOrder(t *testing.T) {
	doc := "Invoice for freight services. Weather was nice. Freight invoice total due. Lunch happened."
	got, err := NewFrequencySummarizer(nil).Summarize(doc, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := "Invoice for freight services. Freight invoice total due."
	if got != want {
		t.Fatalf("Summarize = %q; want %q", got, want)
	}
}

func TestSummarizeNoSentenceBoundary(t *testing.T) {
	got, _ := NewFrequencySummarizer(nil).Summarize("  plain text without a period ", 3)
	if got != "plain text without a period" {
		t.Fatalf("got %q", got)
	}
}

func TestSummarizeShortDocument(t *testing.T) {
	doc := "One sentence here. Two sentences here."
	got, _ := NewFrequencySummarizer(nil).Summarize(doc, 0)
	if strings.Count(got, ".") != 2 {
		t.Fatalf("got %q; want both sentences", got)
	}
}

func TestSummarizeWithoutTerms(t *testing.T) {
	got, err := NewFrequencySummarizer(nil).Summarize("It is. Of the. And so. Was it.", 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != "It is. Of the." {
		t.Fatalf("got %q; want the leading sentences", got)
	}
}
