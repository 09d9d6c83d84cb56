// Package word serves detail documents, including the random-word pick.
// Detail documents are passed through as raw bytes: the API contract is
// exactly the published asset, so re-encoding would only risk drift.
package word

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/gsatvocab/lexedge/internal/domain"
)

// Service handles word detail lookups.
type Service struct {
	details DetailReader
	index   IndexReader
	intN    func(n int) int
}

// New creates a word service.
func New(details DetailReader, index IndexReader) *Service {
	return &Service{
		details: details,
		index:   index,
		intN:    rand.IntN,
	}
}

// WithIntN overrides the random source (tests).
func (s *Service) WithIntN(intN func(n int) int) *Service {
	s.intN = intN
	return s
}

// Get returns the raw detail document and its ETag for a lemma.
func (s *Service) Get(ctx context.Context, lemma string) ([]byte, string, error) {
	lemma = strings.TrimSpace(lemma)
	if lemma == "" {
		return nil, "", fmt.Errorf("lemma must not be empty: %w", domain.ErrInvalidArgument)
	}

	body, etag, err := s.details.DetailDoc(ctx, lemma)
	if err != nil {
		return nil, "", fmt.Errorf("get detail: %w", err)
	}
	return body, etag, nil
}

// Random returns the detail document of a uniformly random index entry.
func (s *Service) Random(ctx context.Context) ([]byte, string, error) {
	entries, err := s.index.Index(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load index: %w", err)
	}

	if len(entries) == 0 {
		return nil, "", domain.ErrEmptyIndex
	}

	pick := entries[s.intN(len(entries))]
	body, etag, err := s.details.DetailDoc(ctx, pick.Lemma)
	if err != nil {
		// The index names a word whose detail object is gone; that is a
		// publish inconsistency, not a client error.
		return nil, "", fmt.Errorf("random pick %q: %v: %w", pick.Lemma, err, domain.ErrStorageUnavailable)
	}
	return body, etag, nil
}
