package word

import (
	"context"

	"github.com/gsatvocab/lexedge/internal/domain"
)

// DetailReader provides raw detail documents.
type DetailReader interface {
	DetailDoc(ctx context.Context, lemma string) (body []byte, etag string, err error)
}

// IndexReader provides the vocabulary index for random selection.
type IndexReader interface {
	Index(ctx context.Context) ([]domain.IndexEntry, error)
}
