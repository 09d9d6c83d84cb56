// Package chi wires the use case services into an HTTP API.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gsatvocab/lexedge/internal/domain"
	audiouc "github.com/gsatvocab/lexedge/internal/usecase/audio"
	healthuc "github.com/gsatvocab/lexedge/internal/usecase/health"
	indexuc "github.com/gsatvocab/lexedge/internal/usecase/index"
	quizuc "github.com/gsatvocab/lexedge/internal/usecase/quiz"
	searchuc "github.com/gsatvocab/lexedge/internal/usecase/search"
	sentencesuc "github.com/gsatvocab/lexedge/internal/usecase/sentences"
	worduc "github.com/gsatvocab/lexedge/internal/usecase/word"
)

// audioMaxAge pins audio responses for a year. Clip content never
// changes under a given filename so immutable is safe.
const audioMaxAge = "public, max-age=31536000, immutable"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// SearchIndexSource exposes the raw search index document for the
// passthrough endpoint.
type SearchIndexSource interface {
	SearchIndexDoc(ctx context.Context) ([]byte, error)
}

// Server routes API requests to the use case services.
type Server struct {
	index         *indexuc.Service
	search        *searchuc.Service
	searchIndex   SearchIndexSource
	words         *worduc.Service
	sentences     *sentencesuc.Service
	quiz          *quizuc.Service
	audio         *audiouc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	indexMaxAge   int
	detailMaxAge  int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	index *indexuc.Service,
	search *searchuc.Service,
	searchIndex SearchIndexSource,
	words *worduc.Service,
	sentences *sentencesuc.Service,
	quiz *quizuc.Service,
	audio *audiouc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		index:       index,
		search:      search,
		searchIndex: searchIndex,
		words:       words,
		sentences:   sentences,
		quiz:        quiz,
		audio:       audio,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrWordNotFound, http.StatusNotFound, ErrorResponseCodeWordNotFound),
		sentinelHandler(domain.ErrAudioNotFound, http.StatusNotFound, ErrorResponseCodeAudioNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
		sentinelHandler(domain.ErrEmptyIndex, http.StatusNotFound, ErrorResponseCodeNotFound),
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrNotEnoughWords, http.StatusBadRequest, ErrorResponseCodeNotEnoughWords),
		sentinelHandler(domain.ErrStorageUnavailable, http.StatusBadGateway, ErrorResponseCodeStorageUnavailable),
	}
	return s
}

// WithCachePolicy sets the max-age, in seconds, advertised for index
// and detail responses. Zero disables the Cache-Control header.
func (s *Server) WithCachePolicy(indexMaxAge, detailMaxAge int) *Server {
	s.indexMaxAge = indexMaxAge
	s.detailMaxAge = detailMaxAge
	return s
}

// Routes mounts the API onto a chi router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/v1/index", s.GetIndex)
	r.Get("/api/v1/search", s.Search)
	r.Get("/api/v1/search-index", s.GetSearchIndex)
	r.Get("/api/v1/words/random", s.GetRandomWord)
	r.Get("/api/v1/words/{lemma}", s.GetWord)
	r.Get("/api/v1/words/{lemma}/sentences", s.GetSentences)
	r.Get("/api/v1/quiz", s.GetQuiz)
	r.Get("/audio/words/{lemma}", s.GetWordAudio)
	r.Get("/audio/sentences/{file}", s.GetSentenceAudio)
	r.Get("/health", s.GetHealth)
	r.Handle("/metrics", promhttp.Handler())
}

// GetIndex handles GET /api/v1/index.
func (s *Server) GetIndex(w http.ResponseWriter, r *http.Request) {
	offset, ok := intQuery(w, r, "offset", 0)
	if !ok {
		return
	}
	limit, ok := intQuery(w, r, "limit", 0)
	if !ok {
		return
	}

	page, err := s.index.List(r.Context(), offset, limit, r.URL.Query().Get("pos"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.setMaxAge(w, s.indexMaxAge)
	writeJSON(w, http.StatusOK, IndexResponse{
		Items:  page.Items,
		Total:  page.Total,
		Offset: page.Offset,
		Limit:  page.Limit,
	})
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	limit, ok := intQuery(w, r, "limit", 0)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")

	items, err := s.search.Query(r.Context(), q, r.URL.Query().Get("pos"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.setMaxAge(w, s.indexMaxAge)
	writeJSON(w, http.StatusOK, SearchResponse{Query: q, Items: items})
}

// GetSearchIndex handles GET /api/v1/search-index. The document is
// served verbatim so the client can filter locally without a round
// trip per keystroke.
func (s *Server) GetSearchIndex(w http.ResponseWriter, r *http.Request) {
	body, err := s.searchIndex.SearchIndexDoc(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.setMaxAge(w, s.indexMaxAge)
	writeRawJSON(w, http.StatusOK, body)
}

// GetWord handles GET /api/v1/words/{lemma}.
func (s *Server) GetWord(w http.ResponseWriter, r *http.Request) {
	body, etag, err := s.words.Get(r.Context(), chi.URLParam(r, "lemma"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if etag != "" {
		w.Header().Set("ETag", etag)
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	s.setMaxAge(w, s.detailMaxAge)
	writeRawJSON(w, http.StatusOK, body)
}

// GetRandomWord handles GET /api/v1/words/random.
func (s *Server) GetRandomWord(w http.ResponseWriter, r *http.Request) {
	body, _, err := s.words.Random(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeRawJSON(w, http.StatusOK, body)
}

// GetSentences handles GET /api/v1/words/{lemma}/sentences.
func (s *Server) GetSentences(w http.ResponseWriter, r *http.Request) {
	pageNum, ok := intQuery(w, r, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := intQuery(w, r, "page_size", 0)
	if !ok {
		return
	}

	page, err := s.sentences.Page(r.Context(), chi.URLParam(r, "lemma"), pageNum, pageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.setMaxAge(w, s.detailMaxAge)
	writeJSON(w, http.StatusOK, SentencesResponse{
		Lemma:      page.Lemma,
		Sentences:  page.Sentences,
		Page:       page.PageNum,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

// GetQuiz handles GET /api/v1/quiz.
func (s *Server) GetQuiz(w http.ResponseWriter, r *http.Request) {
	count, ok := intQuery(w, r, "count", 0)
	if !ok {
		return
	}

	dir, ok := domain.ParseDirection(r.URL.Query().Get("direction"))
	if !ok {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed,
			"direction must be zh2en or en2zh")
		return
	}

	q, err := s.quiz.Generate(r.Context(), count, r.URL.Query().Get("pos"), dir)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, q)
}

// GetWordAudio handles GET /audio/words/{lemma}.
func (s *Server) GetWordAudio(w http.ResponseWriter, r *http.Request) {
	obj, err := s.audio.Word(r.Context(), chi.URLParam(r, "lemma"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.streamAudio(w, obj.Body, obj.ETag, obj.Size)
}

// GetSentenceAudio handles GET /audio/sentences/{file}.
func (s *Server) GetSentenceAudio(w http.ResponseWriter, r *http.Request) {
	obj, err := s.audio.Sentence(r.Context(), chi.URLParam(r, "file"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.streamAudio(w, obj.Body, obj.ETag, obj.Size)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, result := range report.Checks {
		checks[name] = string(result)
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

func (s *Server) streamAudio(w http.ResponseWriter, body io.ReadCloser, etag string, size int64) {
	defer body.Close()

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", audioMaxAge)
	if etag != "" {
		w.Header().Set("ETag", etag)
	}
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		// Headers already sent. Nothing to do but note it.
		s.logger.Warn("audio stream interrupted", zap.Error(err))
	}
}

func (s *Server) setMaxAge(w http.ResponseWriter, seconds int) {
	if seconds > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", seconds))
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

// intQuery parses an optional integer query parameter, writing a 400
// response and returning ok=false when it is malformed.
func intQuery(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed,
			fmt.Sprintf("%s must be an integer", name))
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRawJSON serves a stored JSON document as-is.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrWordNotFound,
		domain.ErrAudioNotFound,
		domain.ErrNotFound,
		domain.ErrEmptyIndex,
		domain.ErrInvalidArgument,
		domain.ErrNotEnoughWords,
		domain.ErrStorageUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}
