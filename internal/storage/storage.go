// Package storage defines the object-store contract. All published site
// assets (index documents, per-word details, audio) live in object
// storage; the API server only reads, the sync CLI only writes.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound signals a missing object key.
var ErrObjectNotFound = errors.New("storage: object not found")

// Object is a fetched object. Body must be closed by the caller.
type Object struct {
	Body        io.ReadCloser
	ETag        string
	ContentType string
	Size        int64
}

// ObjectInfo holds metadata from a Head call.
type ObjectInfo struct {
	ETag string
	Size int64
}

// Reader fetches objects and their metadata.
type Reader interface {
	Get(ctx context.Context, bucket, key string) (*Object, error)
	Head(ctx context.Context, bucket, key string) (ObjectInfo, error)
}

// Writer uploads objects.
type Writer interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
}

// Lister enumerates object keys under a prefix.
type Lister interface {
	List(ctx context.Context, bucket, prefix string) ([]string, error)
}

// Store combines all object-store capabilities.
type Store interface {
	Reader
	Writer
	Lister
}

// ReadObject drains and closes an object body.
func ReadObject(obj *Object) ([]byte, error) {
	defer func() { _ = obj.Body.Close() }()
	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, err
	}
	return data, nil
}
