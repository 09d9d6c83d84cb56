// Package domain holds the core vocabulary types shared by all layers.
// The JSON shapes mirror the published asset documents exactly: the API
// passes them through with at most field selection, never rewriting.
package domain

import "strings"

// IndexEntry is one row of the vocabulary index document
// (vocab_index.json). Previews hold the first runes of the word's
// primary meaning so list views render without a detail fetch.
type IndexEntry struct {
	Lemma        string `json:"lemma"`
	Count        int    `json:"count"`
	Rank         int    `json:"rank"`
	PrimaryPOS   string `json:"primary_pos"`
	MeaningCount int    `json:"meaning_count"`
	ZhPreview    string `json:"zh_preview"`
	EnPreview    string `json:"en_preview"`
}

// Meaning is one sense of a word, produced offline by the enrichment
// pipeline. ExampleIndices point into the word's flattened sentence list.
type Meaning struct {
	POS            string `json:"pos"`
	ZhDef          string `json:"zh_def"`
	EnDef          string `json:"en_def"`
	ExampleIndices []int  `json:"example_indices,omitempty"`
	UsageNote      string `json:"usage_note,omitempty"`
}

// Sentence is an example sentence with its exam-paper source and the
// object name of its pre-generated audio clip (empty when none exists).
type Sentence struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	AudioFile string `json:"audio_file"`
}

// SentenceGroups splits a word's example sentences into the curated
// featured set (1-5 sentences, with audio) and the remainder.
type SentenceGroups struct {
	Featured []Sentence `json:"featured"`
	Other    []Sentence `json:"other"`
}

// WordDetail is the full per-word document (vocab_details/<lemma>.json).
type WordDetail struct {
	Lemma     string         `json:"lemma"`
	Count     int            `json:"count"`
	Rank      int            `json:"rank,omitempty"`
	POSDist   map[string]int `json:"pos_dist"`
	Meanings  []Meaning      `json:"meanings"`
	Sentences SentenceGroups `json:"sentences"`
}

// PrimaryMeaning returns the word's most frequent sense, or false when
// the document carries no meanings at all.
func (d WordDetail) PrimaryMeaning() (Meaning, bool) {
	if len(d.Meanings) == 0 {
		return Meaning{}, false
	}
	return d.Meanings[0], true
}

// SearchIndex is the precomputed filter document (search_index.json):
// lemmas grouped by every part of speech they appear under.
type SearchIndex struct {
	ByPOS map[string][]string `json:"by_pos"`
}

// SafeLemma maps a lemma to the filename-safe form used in object keys.
// The pipeline substitutes "_" for "/" when writing detail files.
func SafeLemma(lemma string) string {
	return strings.ReplaceAll(lemma, "/", "_")
}
