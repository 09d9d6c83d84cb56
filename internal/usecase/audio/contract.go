package audio

import (
	"context"

	"github.com/gsatvocab/lexedge/internal/storage"
)

// Reader fetches audio clips from the audio bucket.
type Reader interface {
	Word(ctx context.Context, lemma string) (*storage.Object, error)
	Sentence(ctx context.Context, file string) (*storage.Object, error)
}
