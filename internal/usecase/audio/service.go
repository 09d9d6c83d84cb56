package audio

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gsatvocab/lexedge/internal/domain"
	"github.com/gsatvocab/lexedge/internal/storage"
)

// sentenceFile constrains sentence clip names to a flat mp3 filename.
// Anything with separators or unexpected characters is rejected before
// the name is turned into an object key.
var sentenceFile = regexp.MustCompile(`^[A-Za-z0-9._-]+\.mp3$`)

type Service struct {
	audio Reader
}

func NewService(audio Reader) *Service {
	return &Service{audio: audio}
}

// Word returns the pronunciation clip for a lemma.
func (s *Service) Word(ctx context.Context, lemma string) (*storage.Object, error) {
	lemma = strings.TrimSpace(lemma)
	if lemma == "" {
		return nil, fmt.Errorf("empty lemma: %w", domain.ErrInvalidArgument)
	}

	return s.audio.Word(ctx, lemma)
}

// Sentence returns an example-sentence clip by filename.
func (s *Service) Sentence(ctx context.Context, file string) (*storage.Object, error) {
	if !sentenceFile.MatchString(file) || strings.Contains(file, "..") {
		return nil, fmt.Errorf("invalid audio filename %q: %w", file, domain.ErrInvalidArgument)
	}

	return s.audio.Sentence(ctx, file)
}
