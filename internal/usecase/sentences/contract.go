package sentences

import (
	"context"

	"github.com/gsatvocab/lexedge/internal/domain"
)

// DetailReader provides parsed detail documents.
type DetailReader interface {
	Detail(ctx context.Context, lemma string) (domain.WordDetail, error)
}
