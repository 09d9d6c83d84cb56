// Package split turns the combined enrichment output into the
// published asset set: one detail document per lemma, the vocabulary
// index, and the part-of-speech search index.
package split

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/gsatvocab/lexedge/internal/domain"
)

// previewRunes bounds the meaning previews carried in index entries.
const previewRunes = 50

// Config names the input file and output locations.
type Config struct {
	InputPath       string
	DetailsDir      string
	IndexPath       string
	SearchIndexPath string
}

// Result summarizes a split run.
type Result struct {
	Details int
	Skipped int
}

// entry pairs the parsed detail with its raw bytes so detail files are
// written verbatim, preserving fields this tool does not model.
type entry struct {
	detail domain.WordDetail
	raw    json.RawMessage
	rank   int // 1-based position in the input, skipped entries included
}

// Run splits the combined vocabulary file into the published assets.
// The details directory is recreated from scratch so stale lemmas from
// a previous run cannot linger.
func Run(cfg Config, logger *zap.Logger) (Result, error) {
	data, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return Result{}, fmt.Errorf("read input: %w", err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return Result{}, fmt.Errorf("parse input: %w", err)
	}

	var res Result
	entries := make([]entry, 0, len(raws))
	for i, raw := range raws {
		var d domain.WordDetail
		if err := json.Unmarshal(raw, &d); err != nil {
			return Result{}, fmt.Errorf("parse entry %d: %w", i, err)
		}
		if d.Lemma == "" {
			logger.Warn("skipping entry without lemma", zap.Int("position", i))
			res.Skipped++
			continue
		}
		entries = append(entries, entry{detail: d, raw: raw, rank: i + 1})
	}

	if err := os.RemoveAll(cfg.DetailsDir); err != nil {
		return Result{}, fmt.Errorf("clear details dir: %w", err)
	}
	if err := os.MkdirAll(cfg.DetailsDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create details dir: %w", err)
	}

	for _, e := range entries {
		name := domain.SafeLemma(e.detail.Lemma) + ".json"
		body, err := indentJSON(e.raw)
		if err != nil {
			return Result{}, fmt.Errorf("format %s: %w", e.detail.Lemma, err)
		}
		if err := os.WriteFile(filepath.Join(cfg.DetailsDir, name), body, 0o644); err != nil {
			return Result{}, fmt.Errorf("write %s: %w", name, err)
		}
		res.Details++
	}

	index := make([]domain.IndexEntry, len(entries))
	for i, e := range entries {
		index[i] = IndexEntry(e.detail, e.rank)
	}
	if err := writeJSON(cfg.IndexPath, index); err != nil {
		return Result{}, fmt.Errorf("write index: %w", err)
	}

	details := make([]domain.WordDetail, len(entries))
	for i, e := range entries {
		details[i] = e.detail
	}
	if err := writeJSON(cfg.SearchIndexPath, BuildSearchIndex(details)); err != nil {
		return Result{}, fmt.Errorf("write search index: %w", err)
	}

	return res, nil
}

// IndexEntry derives the lightweight index row for one word. rank is
// the word's 1-based position in frequency order.
func IndexEntry(d domain.WordDetail, rank int) domain.IndexEntry {
	e := domain.IndexEntry{
		Lemma:        d.Lemma,
		Count:        d.Count,
		Rank:         rank,
		PrimaryPOS:   primaryPOS(d.POSDist),
		MeaningCount: len(d.Meanings),
	}
	if m, ok := d.PrimaryMeaning(); ok {
		e.ZhPreview = preview(m.ZhDef)
		e.EnPreview = preview(m.EnDef)
	}
	return e
}

// BuildSearchIndex groups lemmas by every part of speech they appear
// under, preserving frequency order within each group.
func BuildSearchIndex(details []domain.WordDetail) domain.SearchIndex {
	idx := domain.SearchIndex{ByPOS: make(map[string][]string)}
	for _, d := range details {
		for _, pos := range sortedKeys(d.POSDist) {
			idx.ByPOS[pos] = append(idx.ByPOS[pos], d.Lemma)
		}
	}
	return idx
}

// primaryPOS picks the tag with the highest occurrence count,
// alphabetical on ties so the result is stable across runs.
func primaryPOS(dist map[string]int) string {
	best := ""
	for _, pos := range sortedKeys(dist) {
		if best == "" || dist[pos] > dist[best] {
			best = pos
		}
	}
	return best
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// preview truncates to whole runes so multi-byte definitions are never
// cut mid-character.
func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewRunes {
		return s
	}
	return string(runes[:previewRunes])
}

func indentJSON(raw json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
