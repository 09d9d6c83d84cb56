// Package audio streams pre-generated TTS clips from the audio bucket.
// Audio is never cached in Redis; clips are immutable and HTTP caching
// (long max-age + ETag) does the work instead.
package audio

import (
	"context"
	"errors"
	"fmt"

	"github.com/gsatvocab/lexedge/internal/domain"
	"github.com/gsatvocab/lexedge/internal/storage"
)

// Config holds the audio bucket layout.
type Config struct {
	Bucket         string
	SentencePrefix string
}

// Repository fetches audio objects.
type Repository struct {
	objects storage.Reader
	cfg     Config
}

// New creates an audio repository.
func New(objects storage.Reader, cfg Config) *Repository {
	return &Repository{objects: objects, cfg: cfg}
}

// Word fetches the pronunciation clip for a lemma. The caller owns Body.
func (r *Repository) Word(ctx context.Context, lemma string) (*storage.Object, error) {
	key := domain.SafeLemma(lemma) + ".mp3"
	return r.get(ctx, key)
}

// Sentence fetches a featured-sentence clip by its object name (the
// audio_file field of a detail document).
func (r *Repository) Sentence(ctx context.Context, file string) (*storage.Object, error) {
	return r.get(ctx, r.cfg.SentencePrefix+file)
}

func (r *Repository) get(ctx context.Context, key string) (*storage.Object, error) {
	obj, err := r.objects.Get(ctx, r.cfg.Bucket, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("%q: %w", key, domain.ErrAudioNotFound)
		}
		return nil, fmt.Errorf("get audio %s: %v: %w", key, err, domain.ErrStorageUnavailable)
	}
	return obj, nil
}
