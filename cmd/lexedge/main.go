package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/gsatvocab/lexedge/internal/config"
	"github.com/gsatvocab/lexedge/internal/db"
	dbRedis "github.com/gsatvocab/lexedge/internal/db/redis"
	logpkg "github.com/gsatvocab/lexedge/internal/logger"
	"github.com/gsatvocab/lexedge/internal/metrics"
	audiorepo "github.com/gsatvocab/lexedge/internal/repository/audio"
	vocabrepo "github.com/gsatvocab/lexedge/internal/repository/vocab"
	"github.com/gsatvocab/lexedge/internal/storage"
	"github.com/gsatvocab/lexedge/internal/storage/r2"
	chiTransport "github.com/gsatvocab/lexedge/internal/transport/chi"
	audiouc "github.com/gsatvocab/lexedge/internal/usecase/audio"
	healthuc "github.com/gsatvocab/lexedge/internal/usecase/health"
	indexuc "github.com/gsatvocab/lexedge/internal/usecase/index"
	quizuc "github.com/gsatvocab/lexedge/internal/usecase/quiz"
	searchuc "github.com/gsatvocab/lexedge/internal/usecase/search"
	sentencesuc "github.com/gsatvocab/lexedge/internal/usecase/sentences"
	worduc "github.com/gsatvocab/lexedge/internal/usecase/word"
	"github.com/gsatvocab/lexedge/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lexedge API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("cache_addrs", cfg.Cache.Addrs),
		zap.String("data_bucket", cfg.Storage.DataBucket),
		zap.String("audio_bucket", cfg.Storage.AudioBucket),
	)

	var store db.Store
	store, err = dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Cache.Addrs,
		Username: cfg.Cache.Username,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
		// The cache is an accelerator. Start without it rather than
		// refusing to serve; the repositories degrade to direct reads.
		logger.Warn("Cache not ready, continuing without it", zap.Error(err))
	} else {
		logger.Info("Connected to cache")
	}

	objects, err := r2.New(ctx, r2.Config{
		AccountID:       cfg.Storage.AccountID,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Endpoint:        cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to create object store client", zap.Error(err))
	}

	// Register asset metrics explicitly (no init())
	metrics.RegisterAssetMetrics()

	// Create repositories
	vocabRepo := vocabrepo.New(objects, store, vocabrepo.Config{
		DataBucket:     cfg.Storage.DataBucket,
		DetailsPrefix:  cfg.Storage.DetailsPrefix,
		IndexKey:       cfg.Storage.IndexKey,
		SearchIndexKey: cfg.Storage.SearchIndexKey,
		CacheKeyPrefix: cfg.Cache.KeyPrefix,
		IndexTTL:       time.Duration(cfg.Cache.IndexTTLSec) * time.Second,
		DetailTTL:      time.Duration(cfg.Cache.DetailTTLSec) * time.Second,
	}, logger)
	audioRepo := audiorepo.New(objects, audiorepo.Config{
		Bucket:         cfg.Storage.AudioBucket,
		SentencePrefix: cfg.Storage.SentenceAudio,
	})

	// Create use case services
	indexSvc := indexuc.New(vocabRepo).
		WithPagination(cfg.API.DefaultPageSize, cfg.API.MaxPageSize)
	searchSvc := searchuc.New(vocabRepo, vocabRepo).
		WithMaxLimit(cfg.API.MaxPageSize)
	wordSvc := worduc.New(vocabRepo, vocabRepo)
	sentencesSvc := sentencesuc.New(vocabRepo).
		WithPagination(cfg.API.DefaultPageSize, cfg.API.MaxPageSize)
	quizSvc := quizuc.New(vocabRepo).
		WithCounts(cfg.API.QuizDefaultCount, cfg.API.QuizMaxCount)
	audioSvc := audiouc.NewService(audioRepo)

	healthSvc := healthuc.New(store, newStorageHealthChecker(objects, cfg.Storage.DataBucket, cfg.Storage.IndexKey))

	// Create chi server
	server := chiTransport.NewServer(
		indexSvc, searchSvc, vocabRepo, wordSvc, sentencesSvc, quizSvc, audioSvc, healthSvc, logger,
	).WithCachePolicy(cfg.Cache.IndexTTLSec, cfg.Cache.DetailTTLSec)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// storageHealthChecker probes the data bucket by heading the index
// document, exercising auth and bucket reachability in one call.
type storageHealthChecker struct {
	objects  storage.Reader
	bucket   string
	indexKey string
}

func newStorageHealthChecker(objects storage.Reader, bucket, indexKey string) *storageHealthChecker {
	return &storageHealthChecker{objects: objects, bucket: bucket, indexKey: indexKey}
}

func (h *storageHealthChecker) HealthCheck(ctx context.Context) error {
	if _, err := h.objects.Head(ctx, h.bucket, h.indexKey); err != nil {
		return fmt.Errorf("object store health check: %w", err)
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
