// Package vocab reads the published vocabulary documents from object
// storage with a Redis cache-aside in front. Cache failures are logged
// and degraded to direct object-store reads; a broken cache must never
// fail a request.
package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gsatvocab/lexedge/internal/db"
	"github.com/gsatvocab/lexedge/internal/domain"
	"github.com/gsatvocab/lexedge/internal/metrics"
	"github.com/gsatvocab/lexedge/internal/storage"
)

// store is the consumer interface for the asset cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Config holds bucket layout and cache TTLs.
type Config struct {
	DataBucket     string
	DetailsPrefix  string
	IndexKey       string
	SearchIndexKey string
	CacheKeyPrefix string
	IndexTTL       time.Duration
	DetailTTL      time.Duration
}

// Repository fetches vocabulary documents.
type Repository struct {
	objects storage.Reader
	cache   store
	cfg     Config
	logger  *zap.Logger
}

// New creates a vocabulary repository. cache may be nil (no caching).
func New(objects storage.Reader, cache store, cfg Config, logger *zap.Logger) *Repository {
	return &Repository{
		objects: objects,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
	}
}

// Index returns the full ordered vocabulary index.
func (r *Repository) Index(ctx context.Context) ([]domain.IndexEntry, error) {
	data, _, err := r.fetch(ctx, "index", r.cfg.IndexKey, r.cfg.IndexTTL)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, domain.ErrEmptyIndex
		}
		return nil, err
	}

	entries, err := decodeIndex(data)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrEmptyIndex
	}
	return entries, nil
}

// SearchIndexDoc returns the raw search index document for passthrough.
func (r *Repository) SearchIndexDoc(ctx context.Context) ([]byte, error) {
	data, _, err := r.fetch(ctx, "search_index", r.cfg.SearchIndexKey, r.cfg.IndexTTL)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// SearchIndex returns the parsed search index.
func (r *Repository) SearchIndex(ctx context.Context) (domain.SearchIndex, error) {
	data, err := r.SearchIndexDoc(ctx)
	if err != nil {
		return domain.SearchIndex{}, err
	}
	return decodeSearchIndex(data)
}

// DetailDoc returns the raw detail document and its object-store ETag.
func (r *Repository) DetailDoc(ctx context.Context, lemma string) ([]byte, string, error) {
	key := r.cfg.DetailsPrefix + domain.SafeLemma(lemma) + ".json"
	data, etag, err := r.fetch(ctx, "detail", key, r.cfg.DetailTTL)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, "", fmt.Errorf("%q: %w", lemma, domain.ErrWordNotFound)
		}
		return nil, "", err
	}
	return data, etag, nil
}

// Detail returns the parsed detail document for a lemma.
func (r *Repository) Detail(ctx context.Context, lemma string) (domain.WordDetail, error) {
	data, _, err := r.DetailDoc(ctx, lemma)
	if err != nil {
		return domain.WordDetail{}, err
	}
	return decodeDetail(data)
}

// cacheEnvelope carries the document body together with the object-store
// ETag so cached responses keep their conditional-request headers.
type cacheEnvelope struct {
	ETag string          `json:"etag"`
	Body json.RawMessage `json:"body"`
}

// fetch implements cache-aside: Redis first, object store on miss, then
// populate. Returns the document bytes and the object ETag.
func (r *Repository) fetch(ctx context.Context, doc, key string, ttl time.Duration) ([]byte, string, error) {
	cacheKey := r.cfg.CacheKeyPrefix + key

	if r.cache != nil {
		if data, etag, ok := r.fromCache(ctx, cacheKey); ok {
			metrics.AssetCacheTotal.WithLabelValues(doc, "hit").Inc()
			return data, etag, nil
		}
		metrics.AssetCacheTotal.WithLabelValues(doc, "miss").Inc()
	}

	obj, err := r.objects.Get(ctx, r.cfg.DataBucket, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("get %s: %v: %w", key, err, domain.ErrStorageUnavailable)
	}

	data, err := storage.ReadObject(obj)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %v: %w", key, err, domain.ErrStorageUnavailable)
	}

	r.putCache(ctx, cacheKey, obj.ETag, data, ttl)
	return data, obj.ETag, nil
}

func (r *Repository) fromCache(ctx context.Context, key string) ([]byte, string, bool) {
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			r.logger.Warn("asset cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, "", false
	}

	var env cacheEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		r.logger.Warn("asset cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, "", false
	}
	return env.Body, env.ETag, true
}

func (r *Repository) putCache(ctx context.Context, key, etag string, body []byte, ttl time.Duration) {
	if r.cache == nil {
		return
	}
	data, err := json.Marshal(cacheEnvelope{ETag: etag, Body: body})
	if err != nil {
		return
	}
	if err := r.cache.SetWithTTL(ctx, key, data, ttl); err != nil {
		r.logger.Warn("asset cache write failed", zap.String("key", key), zap.Error(err))
	}
}
