// Package index serves paginated slices of the vocabulary index.
package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/gsatvocab/lexedge/internal/domain"
)

// Page is one slice of the index, with the pre-filter total for the
// client's pager.
type Page struct {
	Items  []domain.IndexEntry
	Total  int
	Offset int
	Limit  int
}

// Service handles index listing.
type Service struct {
	reader          Reader
	defaultPageSize int
	maxPageSize     int
}

// New creates an index service.
func New(reader Reader) *Service {
	return &Service{
		reader:          reader,
		defaultPageSize: 50,
		maxPageSize:     200,
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

// List returns a slice of the index. limit <= 0 selects the default page
// size; limits above the maximum are clamped, not rejected. pos filters
// on the entry's primary part of speech (case-insensitive).
func (s *Service) List(ctx context.Context, offset, limit int, pos string) (Page, error) {
	if offset < 0 {
		return Page{}, fmt.Errorf("offset must not be negative: %w", domain.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	entries, err := s.reader.Index(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("load index: %w", err)
	}

	if pos != "" {
		pos = strings.ToUpper(pos)
		filtered := make([]domain.IndexEntry, 0, len(entries))
		for _, e := range entries {
			if e.PrimaryPOS == pos {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	total := len(entries)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Page{
		Items:  entries[start:end],
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}, nil
}
