package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"
)

// jsonCacheControl keeps dashboards from serving stale payloads.
const jsonCacheControl = "no-cache, no-store, must-revalidate"

// S3API is the minimal interface for the S3 operations the uploader needs.
type S3API interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Artifact is one report file to publish.
type Artifact struct {
	Key         string
	Body        []byte
	ContentType string
}

// Uploader publishes report artifacts to an S3 bucket.
type Uploader struct {
	api           S3API
	bucket        string
	useDatePrefix bool
}

// NewUploader creates an uploader from an AWS config.
func NewUploader(cfg awssdk.Config, bucket string, useDatePrefix bool) *Uploader {
	return &Uploader{api: s3.NewFromConfig(cfg), bucket: bucket, useDatePrefix: useDatePrefix}
}

// NewUploaderFromAPI creates an uploader with an injected API, for tests.
func NewUploaderFromAPI(a S3API, bucket string, useDatePrefix bool) *Uploader {
	return &Uploader{api: a, bucket: bucket, useDatePrefix: useDatePrefix}
}

// Upload puts a single artifact. JSON objects additionally carry a
// no-cache header so the dashboard always sees the latest run.
func (u *Uploader) Upload(ctx context.Context, a Artifact) error {
	input := &s3.PutObjectInput{
		Bucket:      awssdk.String(u.bucket),
		Key:         awssdk.String(u.objectKey(a.Key)),
		Body:        bytes.NewReader(a.Body),
		ContentType: awssdk.String(a.ContentType),
	}
	if a.ContentType == "application/json" {
		input.CacheControl = awssdk.String(jsonCacheControl)
	}

	if _, err := u.api.PutObject(ctx, input); err != nil {
		return fmt.Errorf("upload %s to s3://%s: %w", a.Key, u.bucket, err)
	}

	slog.Info("Uploaded artifact", "bucket", u.bucket, "key", u.objectKey(a.Key))
	return nil
}

// UploadAll publishes all artifacts concurrently. Any failure aborts the
// remaining uploads and is returned; already-computed report content is
// unaffected and a later run retries in full.
func (u *Uploader) UploadAll(ctx context.Context, artifacts []Artifact) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, a := range artifacts {
		a := a
		g.Go(func() error {
			return u.Upload(ctx, a)
		})
	}

	return g.Wait()
}

// objectKey prefixes keys with the run date when configured, so daily
// reports do not overwrite each other.
func (u *Uploader) objectKey(key string) string {
	if !u.useDatePrefix {
		return key
	}
	return path.Join(time.Now().UTC().Format("2006-01-02"), key)
}
