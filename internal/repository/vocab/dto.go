package vocab

import (
	"encoding/json"
	"fmt"

	"github.com/gsatvocab/lexedge/internal/domain"
)

func decodeIndex(data []byte) ([]domain.IndexEntry, error) {
	var entries []domain.IndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse vocab index: %w", err)
	}

	// Entries without a lemma are pipeline artifacts; drop them rather
	// than surfacing unaddressable rows.
	out := entries[:0]
	for _, e := range entries {
		if e.Lemma != "" {
			out = append(out, e)
		}
	}
	return out, nil
}

func decodeSearchIndex(data []byte) (domain.SearchIndex, error) {
	var idx domain.SearchIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return domain.SearchIndex{}, fmt.Errorf("parse search index: %w", err)
	}
	return idx, nil
}

func decodeDetail(data []byte) (domain.WordDetail, error) {
	var d domain.WordDetail
	if err := json.Unmarshal(data, &d); err != nil {
		return domain.WordDetail{}, fmt.Errorf("parse word detail: %w", err)
	}
	if d.Lemma == "" {
		return domain.WordDetail{}, fmt.Errorf("parse word detail: missing lemma")
	}
	return d, nil
}
