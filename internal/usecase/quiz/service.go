// Package quiz generates multiple-choice rounds from the vocabulary
// index. Nothing is persisted: a quiz is a pure function of the index
// and the random source.
package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gsatvocab/lexedge/internal/domain"
)

// Service handles quiz generation.
type Service struct {
	index        IndexReader
	defaultCount int
	maxCount     int
	rng          *rand.Rand
}

// New creates a quiz service.
func New(index IndexReader) *Service {
	return &Service{
		index:        index,
		defaultCount: 10,
		maxCount:     50,
		rng:          rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

// WithCounts configures the default and maximum question counts.
func (s *Service) WithCounts(defaultCount, maxCount int) *Service {
	if defaultCount > 0 {
		s.defaultCount = defaultCount
	}
	if maxCount > 0 {
		s.maxCount = maxCount
	}
	return s
}

// WithRand overrides the random source (tests).
func (s *Service) WithRand(rng *rand.Rand) *Service {
	s.rng = rng
	return s
}

// Generate builds a quiz round. count <= 0 selects the default; counts
// above the maximum are clamped. pos filters candidates by primary part
// of speech. Fewer than four eligible words cannot fill a question's
// choices and yield ErrNotEnoughWords.
func (s *Service) Generate(ctx context.Context, count int, pos string, dir domain.Direction) (domain.Quiz, error) {
	if count <= 0 {
		count = s.defaultCount
	}
	if count > s.maxCount {
		count = s.maxCount
	}

	entries, err := s.index.Index(ctx)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load index: %w", err)
	}

	eligible := s.eligible(entries, pos)
	if len(eligible) < domain.ChoicesPerQuestion {
		return domain.Quiz{}, fmt.Errorf(
			"%d eligible words, need %d: %w",
			len(eligible), domain.ChoicesPerQuestion, domain.ErrNotEnoughWords,
		)
	}

	s.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if count > len(eligible) {
		count = len(eligible)
	}

	questions := make([]domain.Question, 0, count)
	for i := 0; i < count; i++ {
		q, err := s.question(eligible, i, dir)
		if err != nil {
			return domain.Quiz{}, err
		}
		questions = append(questions, q)
	}

	return domain.Quiz{
		ID:        uuid.NewString(),
		Direction: dir,
		Questions: questions,
	}, nil
}

// question builds one item: the word at idx is correct, distractors are
// drawn from the rest of the eligible pool with duplicate choice texts
// removed.
func (s *Service) question(eligible []domain.IndexEntry, idx int, dir domain.Direction) (domain.Question, error) {
	w := eligible[idx]
	correct := choiceText(w, dir)

	seen := map[string]struct{}{correct: {}}
	pool := make([]string, 0, len(eligible)-1)
	for j, e := range eligible {
		if j == idx {
			continue
		}
		text := choiceText(e, dir)
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		pool = append(pool, text)
	}
	if len(pool) < domain.ChoicesPerQuestion-1 {
		return domain.Question{}, fmt.Errorf(
			"only %d distinct distractors for %q: %w",
			len(pool), w.Lemma, domain.ErrNotEnoughWords,
		)
	}

	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	choices := make([]string, domain.ChoicesPerQuestion)
	answer := s.rng.IntN(domain.ChoicesPerQuestion)
	di := 0
	for i := range choices {
		if i == answer {
			choices[i] = correct
			continue
		}
		choices[i] = pool[di]
		di++
	}

	return domain.Question{
		Lemma:   w.Lemma,
		POS:     w.PrimaryPOS,
		Prompt:  promptText(w, dir),
		Choices: choices,
		Answer:  answer,
	}, nil
}

// eligible filters words that can carry a question in either direction:
// a definition preview is required, since it serves as prompt or choice.
func (s *Service) eligible(entries []domain.IndexEntry, pos string) []domain.IndexEntry {
	pos = strings.ToUpper(pos)
	out := make([]domain.IndexEntry, 0, len(entries))
	for _, e := range entries {
		if definition(e) == "" {
			continue
		}
		if pos != "" && e.PrimaryPOS != pos {
			continue
		}
		out = append(out, e)
	}
	return out
}

// definition prefers the Chinese preview, falling back to English.
func definition(e domain.IndexEntry) string {
	if e.ZhPreview != "" {
		return e.ZhPreview
	}
	return e.EnPreview
}

func promptText(e domain.IndexEntry, dir domain.Direction) string {
	if dir == domain.DirectionEnToZh {
		return e.Lemma
	}
	return definition(e)
}

func choiceText(e domain.IndexEntry, dir domain.Direction) string {
	if dir == domain.DirectionEnToZh {
		return definition(e)
	}
	return e.Lemma
}
