package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	domdoc "github.com/kailas-cloud/labdex/internal/domain/document"
	domret "github.com/kailas-cloud/labdex/internal/domain/retrieval"
)

func sourceNames(ex []domret.Excerpt) []string {
	return domret.Result{Sources: ex}.SourceNames()
}

func TestBuild_RanksAndExcludes(t *testing.T) {
	docs := &mockDocs{byProject: map[string][]domdoc.Document{"p1": {
		testDoc("half", "p1", "Soil samples from the north field"),
		testDoc("none", "p1", "Unrelated meeting minutes"),
		testDoc("empty", "p1", ""),
		testDoc("full", "p1", "Nitrogen levels in soil improved"),
		testDoc("other", "p2", "soil nitrogen"),
	}}}
	b := NewContextBuilder(docs, DefaultMinRelevance, DefaultTopK)

	text, excerpts, err := b.Build(context.Background(), "soil nitrogen", "p1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"full.pdf", "half.pdf"}, sourceNames(excerpts)); diff != "" {
		t.Fatalf("excerpt order mismatch (-want +got):\n%s", diff)
	}
	if excerpts[0].Relevance != 1 || excerpts[1].Relevance != 0.5 {
		t.Errorf("relevance = %v, %v", excerpts[0].Relevance, excerpts[1].Relevance)
	}
	want := "From full.pdf: Nitrogen levels in soil improved\n\nFrom half.pdf: Soil samples from the north field"
	if text != want {
		t.Errorf("context = %q, want %q", text, want)
	}
}

func TestBuild_ThresholdIsExclusive(t *testing.T) {
	query := "one two three four five six seven eight nine ten"
	docs := &mockDocs{byProject: map[string][]domdoc.Document{"p1": {
		testDoc("tenth", "p1", "only one term here"),
		testDoc("fifth", "p1", "one and two"),
	}}}

	_, excerpts, err := NewContextBuilder(docs, 0.1, 5).Build(context.Background(), query, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"fifth.pdf"}, sourceNames(excerpts)); diff != "" {
		t.Errorf("coverage of exactly 0.1 must be excluded (-want +got):\n%s", diff)
	}
}

func TestBuild_TopK(t *testing.T) {
	var list []domdoc.Document
	for i := range 8 {
		list = append(list, testDoc(fmt.Sprintf("d%d", i), "p1", "grant report"))
	}
	_, excerpts, err := NewContextBuilder(&mockDocs{byProject: map[string][]domdoc.Document{"p1": list}}, 0.1, 5).
		Build(context.Background(), "grant", "p1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"d0.pdf", "d1.pdf", "d2.pdf", "d3.pdf", "d4.pdf"}, sourceNames(excerpts)); diff != "" {
		t.Errorf("top-k mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_SnippetsLongDescriptions(t *testing.T) {
	desc := strings.Repeat("a", 100) + " budget " + strings.Repeat("b", 200)
	docs := &mockDocs{byProject: map[string][]domdoc.Document{"p1": {testDoc("long", "p1", desc)}}}

	_, excerpts, err := NewContextBuilder(docs, 0.1, 5).Build(context.Background(), "budget", "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(excerpts) != 1 {
		t.Fatalf("expected one excerpt, got %d", len(excerpts))
	}
	if want := desc[51:251] + "..."; excerpts[0].Snippet != want {
		t.Errorf("Snippet = %q, want %q", excerpts[0].Snippet, want)
	}
	if excerpts[0].Content != desc {
		t.Error("Content should keep the full description")
	}
}

func TestBuild_NoDocuments(t *testing.T) {
	text, excerpts, err := NewContextBuilder(&mockDocs{}, 0.1, 5).Build(context.Background(), "q", "unknown")
	if err != nil {
		t.Fatal(err)
	}
	if text != "" || len(excerpts) != 0 {
		t.Errorf("expected empty context, got %q %v", text, excerpts)
	}
}

func TestBuild_StoreError(t *testing.T) {
	_, _, err := NewContextBuilder(&mockDocs{err: errors.New("conn refused")}, 0.1, 5).
		Build(context.Background(), "q", "p1")
	if err == nil {
		t.Fatal("expected error")
	}
}
