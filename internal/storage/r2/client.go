// Package r2 implements storage.Store against Cloudflare R2 over the S3
// API. R2 is S3-compatible: a fixed account endpoint, region "auto" and
// static credentials are the only deviations from stock S3.
package r2

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/gsatvocab/lexedge/internal/metrics"
	"github.com/gsatvocab/lexedge/internal/storage"
)

// Compile-time check: Client implements storage.Store.
var _ storage.Store = (*Client)(nil)

// Config holds R2 connection parameters.
type Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the derived R2 endpoint (used by tests and for
	// plain S3 or MinIO deployments).
	Endpoint string
}

// Client is an object-store client for Cloudflare R2.
type Client struct {
	api s3API
}

// s3API is the subset of the S3 client the store uses.
type s3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// New creates an R2 client with static credentials.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.AccountID == "" && cfg.Endpoint == "" {
		return nil, fmt.Errorf("account id or endpoint is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("access key id and secret access key are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		// R2 does not support virtual-hosted bucket addressing.
		o.UsePathStyle = true
	})

	return &Client{api: api}, nil
}

// NewForTest wraps an existing S3 API implementation (e.g. a mock).
func NewForTest(api s3API) *Client {
	return &Client{api: api}
}

// Get fetches an object. The caller owns obj.Body.
func (c *Client) Get(ctx context.Context, bucket, key string) (*storage.Object, error) {
	start := time.Now()
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	metrics.ObserveObjectStoreOp("get", err, time.Since(start))
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrObjectNotFound
		}
		return nil, fmt.Errorf("get object %s/%s: %w", bucket, key, err)
	}

	return &storage.Object{
		Body:        out.Body,
		ETag:        aws.ToString(out.ETag),
		ContentType: aws.ToString(out.ContentType),
		Size:        aws.ToInt64(out.ContentLength),
	}, nil
}

// Head fetches object metadata without the body.
func (c *Client) Head(ctx context.Context, bucket, key string) (storage.ObjectInfo, error) {
	start := time.Now()
	out, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	metrics.ObserveObjectStoreOp("head", err, time.Since(start))
	if err != nil {
		if isNotFound(err) {
			return storage.ObjectInfo{}, storage.ErrObjectNotFound
		}
		return storage.ObjectInfo{}, fmt.Errorf("head object %s/%s: %w", bucket, key, err)
	}

	return storage.ObjectInfo{
		ETag: aws.ToString(out.ETag),
		Size: aws.ToInt64(out.ContentLength),
	}, nil
}

// Put uploads an object.
func (c *Client) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	start := time.Now()
	in := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	_, err := c.api.PutObject(ctx, in)
	metrics.ObserveObjectStoreOp("put", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("put object %s/%s: %w", bucket, key, err)
	}
	return nil
}

// List returns all keys under a prefix, following pagination.
func (c *Client) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	p := s3.NewListObjectsV2Paginator(c.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		start := time.Now()
		page, err := p.NextPage(ctx)
		metrics.ObserveObjectStoreOp("list", err, time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("list objects %s/%s: %w", bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

// isNotFound matches the S3 error shapes for a missing key. GetObject
// returns NoSuchKey; HeadObject returns a bare 404 NotFound.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}
