package search

import (
	"context"

	"github.com/gsatvocab/lexedge/internal/domain"
)

// IndexReader provides the vocabulary index document.
type IndexReader interface {
	Index(ctx context.Context) ([]domain.IndexEntry, error)
}

// FilterReader provides the precomputed part-of-speech filter index.
type FilterReader interface {
	SearchIndex(ctx context.Context) (domain.SearchIndex, error)
}
