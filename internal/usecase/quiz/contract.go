package quiz

import (
	"context"

	"github.com/gsatvocab/lexedge/internal/domain"
)

// IndexReader provides the vocabulary index. Quizzes are generated from
// index previews alone, so a round costs one (cached) document read.
type IndexReader interface {
	Index(ctx context.Context) ([]domain.IndexEntry, error)
}
