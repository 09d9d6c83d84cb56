// Package sync pushes locally generated assets to the object store and
// verifies what is already there.
package sync

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gsatvocab/lexedge/internal/storage"
)

const (
	defaultWorkers  = 8
	defaultAttempts = 3
	baseBackoff     = 500 * time.Millisecond
)

// File is one local asset queued for upload.
type File struct {
	Path string // local filesystem path
	Key  string // destination object key
	Size int64
}

// Outcome records the result of one file's upload.
type Outcome struct {
	Key string
	Err error
}

// Result summarizes an upload run.
type Result struct {
	Uploaded int
	Failed   []Outcome
}

// Uploader pushes files to a bucket with bounded concurrency. Each
// upload is retried with exponential backoff before it counts as
// failed.
type Uploader struct {
	objects  storage.Writer
	bucket   string
	workers  int
	attempts int
	logger   *zap.Logger
}

// NewUploader creates an uploader for one destination bucket.
func NewUploader(objects storage.Writer, bucket string, logger *zap.Logger) *Uploader {
	return &Uploader{
		objects:  objects,
		bucket:   bucket,
		workers:  defaultWorkers,
		attempts: defaultAttempts,
		logger:   logger,
	}
}

// WithWorkers sets the number of concurrent uploads.
func (u *Uploader) WithWorkers(n int) *Uploader {
	if n > 0 {
		u.workers = n
	}
	return u
}

// WithAttempts sets how many times each upload is tried.
func (u *Uploader) WithAttempts(n int) *Uploader {
	if n > 0 {
		u.attempts = n
	}
	return u
}

// Upload pushes all files and reports per-file failures rather than
// aborting the batch: a republish should land as much as it can.
func (u *Uploader) Upload(ctx context.Context, files []File) Result {
	jobs := make(chan File)
	outcomes := make(chan Outcome)

	for range u.workers {
		go func() {
			for f := range jobs {
				outcomes <- Outcome{Key: f.Key, Err: u.uploadOne(ctx, f)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, f := range files {
			select {
			case jobs <- f:
			case <-ctx.Done():
				// The consumer below collects one outcome per file, so
				// every undispatched file still owes it one.
				for _, rest := range files[i:] {
					outcomes <- Outcome{Key: rest.Key, Err: ctx.Err()}
				}
				return
			}
		}
	}()

	var res Result
	for range files {
		out := <-outcomes
		if out.Err != nil {
			res.Failed = append(res.Failed, out)
			u.logger.Warn("upload failed", zap.String("key", out.Key), zap.Error(out.Err))
			continue
		}
		res.Uploaded++
	}
	return res
}

func (u *Uploader) uploadOne(ctx context.Context, f File) error {
	var lastErr error
	for attempt := 0; attempt < u.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(baseBackoff << (attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		body, err := os.Open(f.Path)
		if err != nil {
			return fmt.Errorf("open %s: %w", f.Path, err)
		}
		err = u.objects.Put(ctx, u.bucket, f.Key, body, ContentType(f.Path))
		_ = body.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("after %d attempts: %w", u.attempts, lastErr)
}

// Scan collects the files under dir, mapping each to an object key
// below keyPrefix with the relative directory structure preserved.
// Hidden files (.DS_Store and friends) are skipped.
func Scan(dir, keyPrefix string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, File{
			Path: path,
			Key:  keyPrefix + filepath.ToSlash(rel),
			Size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Key < files[j].Key })
	return files, nil
}

// ContentType maps an asset filename to its MIME type. The published
// set only contains JSON documents and mp3 clips.
func ContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "application/json"
	case ".mp3":
		return "audio/mpeg"
	default:
		return "application/octet-stream"
	}
}

// CheckReport lists the divergences between the local asset set and
// the bucket.
type CheckReport struct {
	Missing    []string // keys absent from the bucket
	Mismatched []string // keys whose remote size differs from the local file
}

// Clean reports whether the bucket matches the local set.
func (r CheckReport) Clean() bool {
	return len(r.Missing) == 0 && len(r.Mismatched) == 0
}

// Verify heads each file's object and compares sizes. A size mismatch
// means a truncated or stale upload; ETags are not compared because R2
// multipart ETags are not content hashes.
func Verify(ctx context.Context, objects storage.Reader, bucket string, files []File) (CheckReport, error) {
	var report CheckReport
	for _, f := range files {
		info, err := objects.Head(ctx, bucket, f.Key)
		switch {
		case errors.Is(err, storage.ErrObjectNotFound):
			report.Missing = append(report.Missing, f.Key)
		case err != nil:
			return CheckReport{}, fmt.Errorf("head %s/%s: %w", bucket, f.Key, err)
		case info.Size != f.Size:
			report.Mismatched = append(report.Mismatched, f.Key)
		}
	}
	return report, nil
}

// Orphans returns keys under prefix that no local file maps to,
// leftovers of lemmas removed from the data set.
func Orphans(ctx context.Context, objects storage.Lister, bucket, prefix string, files []File) ([]string, error) {
	keys, err := objects.List(ctx, bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s/%s: %w", bucket, prefix, err)
	}

	local := make(map[string]struct{}, len(files))
	for _, f := range files {
		local[f.Key] = struct{}{}
	}

	var orphans []string
	for _, key := range keys {
		if _, ok := local[key]; !ok {
			orphans = append(orphans, key)
		}
	}
	return orphans, nil
}
