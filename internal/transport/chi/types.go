package chi

import "github.com/gsatvocab/lexedge/internal/domain"

// ErrorResponseCode identifies a class of API error.
type ErrorResponseCode string

const (
	ErrorResponseCodeValidationFailed   ErrorResponseCode = "validation_failed"
	ErrorResponseCodeWordNotFound       ErrorResponseCode = "word_not_found"
	ErrorResponseCodeAudioNotFound      ErrorResponseCode = "audio_not_found"
	ErrorResponseCodeNotFound           ErrorResponseCode = "not_found"
	ErrorResponseCodeNotEnoughWords     ErrorResponseCode = "not_enough_words"
	ErrorResponseCodeStorageUnavailable ErrorResponseCode = "storage_unavailable"
	ErrorResponseCodeInternalError      ErrorResponseCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// IndexResponse is one page of the vocabulary index.
type IndexResponse struct {
	Items  []domain.IndexEntry `json:"items"`
	Total  int                 `json:"total"`
	Offset int                 `json:"offset"`
	Limit  int                 `json:"limit"`
}

// SearchResponse lists index entries matching a query.
type SearchResponse struct {
	Query string              `json:"query"`
	Items []domain.IndexEntry `json:"items"`
}

// SentencesResponse is one page of a word's example sentences.
type SentencesResponse struct {
	Lemma      string            `json:"lemma"`
	Sentences  []domain.Sentence `json:"sentences"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
