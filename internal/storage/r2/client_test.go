package r2

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/gsatvocab/lexedge/internal/storage"
)

// mockS3 serves a fixed key space. Keys map to object bodies.
type mockS3 struct {
	objects map[string][]byte
	puts    map[string]string // key -> content type
	pages   [][]string        // keys returned per ListObjectsV2 page
	page    int
}

func (m *mockS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := m.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(body)),
		ETag:          aws.String(`"etag-1"`),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(body))),
	}, nil
}

func (m *mockS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	body, ok := m.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{
		ETag:          aws.String(`"etag-1"`),
		ContentLength: aws.Int64(int64(len(body))),
	}, nil
}

func (m *mockS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.puts == nil {
		m.puts = make(map[string]string)
	}
	m.puts[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3) ListObjectsV2(_ context.Context, _ *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if m.page >= len(m.pages) {
		return &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}, nil
	}
	keys := m.pages[m.page]
	m.page++
	contents := make([]types.Object, len(keys))
	for i, k := range keys {
		contents[i] = types.Object{Key: aws.String(k)}
	}
	out := &s3.ListObjectsV2Output{
		Contents:    contents,
		IsTruncated: aws.Bool(m.page < len(m.pages)),
	}
	if m.page < len(m.pages) {
		out.NextContinuationToken = aws.String("token")
	}
	return out, nil
}

func TestNewValidatesConfig(t *testing.T) {
	ctx := context.Background()

	if _, err := New(ctx, Config{AccessKeyID: "k", SecretAccessKey: "s"}); err == nil {
		t.Error("New() without account or endpoint should fail")
	}
	if _, err := New(ctx, Config{AccountID: "acct"}); err == nil {
		t.Error("New() without credentials should fail")
	}
	if _, err := New(ctx, Config{AccountID: "acct", AccessKeyID: "k", SecretAccessKey: "s"}); err != nil {
		t.Errorf("New() error = %v", err)
	}
}

func TestGet(t *testing.T) {
	client := NewForTest(&mockS3{objects: map[string][]byte{"vocab_index.json": []byte(`[]`)}})

	obj, err := client.Get(context.Background(), "vocab-data", "vocab_index.json")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	data, err := storage.ReadObject(obj)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[]` || obj.ETag != `"etag-1"` {
		t.Errorf("body = %s, etag = %s", data, obj.ETag)
	}
}

func TestGetNotFound(t *testing.T) {
	client := NewForTest(&mockS3{})

	_, err := client.Get(context.Background(), "vocab-data", "missing.json")
	if !errors.Is(err, storage.ErrObjectNotFound) {
		t.Fatalf("Get() error = %v, want ErrObjectNotFound", err)
	}
}

func TestHeadNotFound(t *testing.T) {
	client := NewForTest(&mockS3{})

	_, err := client.Head(context.Background(), "vocab-data", "missing.json")
	if !errors.Is(err, storage.ErrObjectNotFound) {
		t.Fatalf("Head() error = %v, want ErrObjectNotFound", err)
	}
}

func TestPutSetsContentType(t *testing.T) {
	mock := &mockS3{}
	client := NewForTest(mock)

	err := client.Put(context.Background(), "vocab-data", "vocab_index.json",
		strings.NewReader(`[]`), "application/json")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if got := mock.puts["vocab_index.json"]; got != "application/json" {
		t.Errorf("content type = %q", got)
	}
}

func TestListFollowsPagination(t *testing.T) {
	mock := &mockS3{pages: [][]string{
		{"vocab_details/a.json", "vocab_details/b.json"},
		{"vocab_details/c.json"},
	}}
	client := NewForTest(mock)

	keys, err := client.List(context.Background(), "vocab-data", "vocab_details/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(keys) != 3 || keys[2] != "vocab_details/c.json" {
		t.Errorf("keys = %v", keys)
	}
}
