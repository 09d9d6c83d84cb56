// Package sentences paginates a word's example sentences, featured
// clips ahead of the rest.
package sentences

import (
	"context"
	"fmt"

	"github.com/gsatvocab/lexedge/internal/domain"
)

// Page is one page of a word's sentences.
type Page struct {
	Lemma      string
	Sentences  []domain.Sentence
	PageNum    int
	PageSize   int
	Total      int
	TotalPages int
}

// Service handles sentence pagination.
type Service struct {
	details         DetailReader
	defaultPageSize int
	maxPageSize     int
}

// New creates a sentences service.
func New(details DetailReader) *Service {
	return &Service{
		details:         details,
		defaultPageSize: 10,
		maxPageSize:     50,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// Page returns the pageNum-th (1-based) page of the word's sentences.
// A page past the end returns an empty item list, not an error, so
// clients can page blindly.
func (s *Service) Page(ctx context.Context, lemma string, pageNum, pageSize int) (Page, error) {
	if pageNum < 1 {
		return Page{}, fmt.Errorf("page must be >= 1: %w", domain.ErrInvalidArgument)
	}
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	detail, err := s.details.Detail(ctx, lemma)
	if err != nil {
		return Page{}, fmt.Errorf("get detail: %w", err)
	}

	all := make([]domain.Sentence, 0, len(detail.Sentences.Featured)+len(detail.Sentences.Other))
	all = append(all, detail.Sentences.Featured...)
	all = append(all, detail.Sentences.Other...)

	total := len(all)
	totalPages := (total + pageSize - 1) / pageSize

	start := (pageNum - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page{
		Lemma:      detail.Lemma,
		Sentences:  all[start:end],
		PageNum:    pageNum,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
