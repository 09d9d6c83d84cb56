package sentences

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gsatvocab/lexedge/internal/domain"
)

type mockDetails struct {
	detail domain.WordDetail
	err    error
}

func (m *mockDetails) Detail(_ context.Context, _ string) (domain.WordDetail, error) {
	return m.detail, m.err
}

func detailWithSentences(featured, other int) domain.WordDetail {
	d := domain.WordDetail{Lemma: "abandon"}
	for i := 0; i < featured; i++ {
		d.Sentences.Featured = append(d.Sentences.Featured, domain.Sentence{
			Text:      fmt.Sprintf("featured %d", i),
			Source:    "105學測",
			AudioFile: fmt.Sprintf("abandon_%d_cafe1234.mp3", i),
		})
	}
	for i := 0; i < other; i++ {
		d.Sentences.Other = append(d.Sentences.Other, domain.Sentence{
			Text:   fmt.Sprintf("other %d", i),
			Source: "98指考",
		})
	}
	return d
}

func TestPage_FeaturedFirst(t *testing.T) {
	svc := New(&mockDetails{detail: detailWithSentences(2, 3)})

	page, err := svc.Page(context.Background(), "abandon", 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 5 || page.TotalPages != 1 {
		t.Fatalf("unexpected page meta: %+v", page)
	}
	if page.Sentences[0].Text != "featured 0" || page.Sentences[2].Text != "other 0" {
		t.Errorf("featured sentences must come first: %+v", page.Sentences)
	}
}

func TestPage_Pagination(t *testing.T) {
	svc := New(&mockDetails{detail: detailWithSentences(3, 9)})

	page, err := svc.Page(context.Background(), "abandon", 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Sentences) != 5 {
		t.Fatalf("expected 5 sentences, got %d", len(page.Sentences))
	}
	if page.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", page.TotalPages)
	}
	// Page 2 of 5: items 5..9 of featured(3)+other(9).
	if page.Sentences[0].Text != "other 2" {
		t.Errorf("unexpected first sentence on page 2: %q", page.Sentences[0].Text)
	}
}

func TestPage_PastEndIsEmpty(t *testing.T) {
	svc := New(&mockDetails{detail: detailWithSentences(1, 1)})

	page, err := svc.Page(context.Background(), "abandon", 99, 10)
	if err != nil {
		t.Fatalf("page past end must not error: %v", err)
	}
	if len(page.Sentences) != 0 {
		t.Fatalf("expected empty page, got %d", len(page.Sentences))
	}
	if page.Total != 2 {
		t.Errorf("total should survive past-end page, got %d", page.Total)
	}
}

func TestPage_InvalidPageNumber(t *testing.T) {
	svc := New(&mockDetails{detail: detailWithSentences(1, 1)})

	_, err := svc.Page(context.Background(), "abandon", 0, 10)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPage_ClampsPageSize(t *testing.T) {
	svc := New(&mockDetails{detail: detailWithSentences(0, 100)}).WithPagination(10, 50)

	page, err := svc.Page(context.Background(), "abandon", 1, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Sentences) != 50 {
		t.Fatalf("expected clamp to 50, got %d", len(page.Sentences))
	}
}

func TestPage_WordNotFound(t *testing.T) {
	svc := New(&mockDetails{err: domain.ErrWordNotFound})

	_, err := svc.Page(context.Background(), "missing", 1, 10)
	if !errors.Is(err, domain.ErrWordNotFound) {
		t.Fatalf("expected ErrWordNotFound, got %v", err)
	}
}
