package index

import (
	"context"

	"github.com/gsatvocab/lexedge/internal/domain"
)

// Reader provides the vocabulary index document.
type Reader interface {
	Index(ctx context.Context) ([]domain.IndexEntry, error)
}
