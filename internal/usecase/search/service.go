// Package search implements lemma lookup over the vocabulary index.
// The dataset is a few thousand entries, so a linear scan over the
// cached index beats maintaining a server-side inverted index.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/gsatvocab/lexedge/internal/domain"
)

// Service handles word search.
type Service struct {
	index    IndexReader
	filters  FilterReader
	maxLimit int
}

// New creates a search service.
func New(index IndexReader, filters FilterReader) *Service {
	return &Service{
		index:    index,
		filters:  filters,
		maxLimit: 50,
	}
}

// WithMaxLimit configures the result cap.
func (s *Service) WithMaxLimit(n int) *Service {
	if n > 0 {
		s.maxLimit = n
	}
	return s
}

// Query returns index entries whose lemma matches q, prefix matches
// ordered before substring matches and index (frequency) order preserved
// within each group. pos restricts results to lemmas listed under that
// part of speech in the search index — any sense counts, not just the
// primary one.
func (s *Service) Query(ctx context.Context, q, pos string, limit int) ([]domain.IndexEntry, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil, fmt.Errorf("query must not be empty: %w", domain.ErrInvalidArgument)
	}
	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	entries, err := s.index.Index(ctx)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}

	allowed, err := s.posFilter(ctx, pos)
	if err != nil {
		return nil, err
	}

	var prefix, substr []domain.IndexEntry
	for _, e := range entries {
		lemma := strings.ToLower(e.Lemma)
		if allowed != nil {
			if _, ok := allowed[e.Lemma]; !ok {
				continue
			}
		}
		switch {
		case strings.HasPrefix(lemma, q):
			prefix = append(prefix, e)
		case strings.Contains(lemma, q):
			substr = append(substr, e)
		}
	}

	results := append(prefix, substr...)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// posFilter returns the set of lemmas carrying the given part of speech,
// or nil when no filter applies. An unknown POS yields an empty set, not
// an error: the filter document defines what exists.
func (s *Service) posFilter(ctx context.Context, pos string) (map[string]struct{}, error) {
	if pos == "" {
		return nil, nil
	}

	idx, err := s.filters.SearchIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("load search index: %w", err)
	}

	lemmas := idx.ByPOS[strings.ToUpper(pos)]
	allowed := make(map[string]struct{}, len(lemmas))
	for _, l := range lemmas {
		allowed[l] = struct{}{}
	}
	return allowed, nil
}
