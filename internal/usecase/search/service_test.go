package search

import (
	"context"
	"errors"
	"testing"

	"github.com/gsatvocab/lexedge/internal/domain"
)

type mockIndex struct {
	entries []domain.IndexEntry
	err     error
}

func (m *mockIndex) Index(_ context.Context) ([]domain.IndexEntry, error) {
	return m.entries, m.err
}

type mockFilters struct {
	idx domain.SearchIndex
	err error
}

func (m *mockFilters) SearchIndex(_ context.Context) (domain.SearchIndex, error) {
	return m.idx, m.err
}

func testEntries() []domain.IndexEntry {
	return []domain.IndexEntry{
		{Lemma: "abandon", Rank: 1, PrimaryPOS: "VERB"},
		{Lemma: "band", Rank: 2, PrimaryPOS: "NOUN"},
		{Lemma: "abnormal", Rank: 3, PrimaryPOS: "ADJ"},
		{Lemma: "Abroad", Rank: 4, PrimaryPOS: "ADV"},
		{Lemma: "husband", Rank: 5, PrimaryPOS: "NOUN"},
	}
}

func TestQuery_PrefixBeforeSubstring(t *testing.T) {
	svc := New(&mockIndex{entries: testEntries()}, &mockFilters{})

	results, err := svc.Query(context.Background(), "ab", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"abandon", "abnormal", "Abroad"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d: %+v", len(want), len(results), results)
	}
	for i, lemma := range want {
		if results[i].Lemma != lemma {
			t.Errorf("result %d: expected %q, got %q", i, lemma, results[i].Lemma)
		}
	}
}

func TestQuery_SubstringMatches(t *testing.T) {
	svc := New(&mockIndex{entries: testEntries()}, &mockFilters{})

	results, err := svc.Query(context.Background(), "band", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "band" is a prefix match; "abandon" and "husband" contain it.
	if len(results) != 3 || results[0].Lemma != "band" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestQuery_CaseInsensitive(t *testing.T) {
	svc := New(&mockIndex{entries: testEntries()}, &mockFilters{})

	results, err := svc.Query(context.Background(), "ABROAD", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Lemma != "Abroad" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestQuery_EmptyQuery(t *testing.T) {
	svc := New(&mockIndex{entries: testEntries()}, &mockFilters{})

	_, err := svc.Query(context.Background(), "   ", "", 0)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestQuery_LimitApplied(t *testing.T) {
	svc := New(&mockIndex{entries: testEntries()}, &mockFilters{})

	results, err := svc.Query(context.Background(), "a", "", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestQuery_POSFilterUsesSearchIndex(t *testing.T) {
	filters := &mockFilters{idx: domain.SearchIndex{
		ByPOS: map[string][]string{
			// "abandon" appears as NOUN in some sentences even though its
			// primary POS is VERB.
			"NOUN": {"abandon", "band", "husband"},
		},
	}}
	svc := New(&mockIndex{entries: testEntries()}, filters)

	results, err := svc.Query(context.Background(), "ab", "noun", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Lemma != "abandon" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestQuery_UnknownPOSReturnsEmpty(t *testing.T) {
	svc := New(&mockIndex{entries: testEntries()}, &mockFilters{idx: domain.SearchIndex{ByPOS: map[string][]string{}}})

	results, err := svc.Query(context.Background(), "ab", "INTJ", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %+v", results)
	}
}

func TestQuery_FilterErrorPropagates(t *testing.T) {
	svc := New(&mockIndex{entries: testEntries()}, &mockFilters{err: domain.ErrNotFound})

	_, err := svc.Query(context.Background(), "ab", "NOUN", 0)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
