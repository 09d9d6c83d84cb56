package vocab

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/gsatvocab/lexedge/internal/storage"
)

// mockReader implements storage.Reader for tests.
type mockReader struct {
	getFn  func(ctx context.Context, bucket, key string) (*storage.Object, error)
	headFn func(ctx context.Context, bucket, key string) (storage.ObjectInfo, error)

	getCalls int
}

func (m *mockReader) Get(ctx context.Context, bucket, key string) (*storage.Object, error) {
	m.getCalls++
	if m.getFn != nil {
		return m.getFn(ctx, bucket, key)
	}
	return nil, storage.ErrObjectNotFound
}

func (m *mockReader) Head(ctx context.Context, bucket, key string) (storage.ObjectInfo, error) {
	if m.headFn != nil {
		return m.headFn(ctx, bucket, key)
	}
	return storage.ObjectInfo{}, storage.ErrObjectNotFound
}

// object wraps raw bytes as a storage.Object with an ETag.
func object(data []byte, etag string) *storage.Object {
	return &storage.Object{
		Body: io.NopCloser(bytes.NewReader(data)),
		ETag: etag,
		Size: int64(len(data)),
	}
}

// mockCache implements the repository's cache consumer interface.
type mockCache struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error

	sets map[string][]byte
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, errNotCached
}

func (m *mockCache) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	if m.sets == nil {
		m.sets = make(map[string][]byte)
	}
	m.sets[key] = value
	return nil
}
