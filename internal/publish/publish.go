// Package publish uploads render artifacts to S3-compatible object storage.
package publish

import (
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options describes the target bucket.
type Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
	Secure    bool
}

// Uploader puts local files under a run-specific key prefix.
type Uploader struct {
	client *minio.Client
	bucket string
	prefix string
}

// New connects an Uploader. No request is made until Upload.
func New(opts Options) (*Uploader, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", opts.Endpoint, err)
	}
	return NewWithClient(client, opts.Bucket, opts.Prefix), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *minio.Client, bucket, prefix string) *Uploader {
	return &Uploader{client: client, bucket: bucket, prefix: prefix}
}

// RunKey returns the object key for a file produced by the run started at t.
func RunKey(prefix string, t time.Time, file string) string {
	return path.Join(prefix, t.UTC().Format("20060102T150405Z"), filepath.Base(file))
}

// Upload stores every file under prefix/<run timestamp>/ and returns the keys.
// It stops at the first failure.
func (u *Uploader) Upload(ctx context.Context, run time.Time, files ...string) ([]string, error) {
	keys := make([]string, 0, len(files))
	for _, f := range files {
		key := RunKey(u.prefix, run, f)
		opts := minio.PutObjectOptions{ContentType: contentType(f)}
		if _, err := u.client.FPutObject(ctx, u.bucket, key, f, opts); err != nil {
			return keys, fmt.Errorf("upload %s: %w", f, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func contentType(file string) string {
	switch filepath.Ext(file) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".json":
		return "application/json"
	}
	if t := mime.TypeByExtension(filepath.Ext(file)); t != "" {
		return t
	}
	return "application/octet-stream"
}
