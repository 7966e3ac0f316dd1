/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package datasync mirrors entity CSV files from an S3 bucket prefix into the
// local entity-data directory layout consumed by dictstore.Populate.
package datasync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore is the slice of the S3 API the mirror needs. *s3.Client
// satisfies it; tests supply fakes.
type ObjectStore interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3Client initializes an S3 client using AWS credentials. Empty access
// keys fall back to the ambient credential chain.
func NewS3Client(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion string) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(awsRegion),
	}
	if awsAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Mirror copies an S3 bucket prefix to a local directory.
type Mirror struct {
	client ObjectStore
	bucket string
	prefix string
	logger *slog.Logger
}

// NewMirror builds a mirror of bucket/prefix.
func NewMirror(client ObjectStore, bucket, prefix string, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// Sync downloads every object under the prefix into destDir, recreating the
// key layout relative to the prefix. Keys ending in "/" are folder markers and
// skipped. Returns the number of files written.
func (m *Mirror) Sync(ctx context.Context, destDir string) (int, error) {
	if m.bucket == "" {
		return 0, fmt.Errorf("sync: bucket name is empty")
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("sync: create destination: %w", err)
	}

	written := 0
	var continuation *string
	for {
		out, err := m.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            &m.bucket,
			Prefix:            &m.prefix,
			ContinuationToken: continuation,
		})
		if err != nil {
			return written, fmt.Errorf("sync: list s3://%s/%s: %w", m.bucket, m.prefix, err)
		}

		for _, obj := range out.Contents {
			if obj.Key == nil || strings.HasSuffix(*obj.Key, "/") {
				continue
			}
			if err := m.download(ctx, *obj.Key, destDir); err != nil {
				return written, err
			}
			written++
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			return written, nil
		}
		continuation = out.NextContinuationToken
	}
}

func (m *Mirror) download(ctx context.Context, key, destDir string) error {
	rel := strings.TrimPrefix(strings.TrimPrefix(key, m.prefix), "/")
	if rel == "" {
		rel = filepath.Base(key)
	}
	local := filepath.Join(destDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return fmt.Errorf("sync: create directory for %s: %w", key, err)
	}

	obj, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &m.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("sync: get s3://%s/%s: %w", m.bucket, key, err)
	}
	defer obj.Body.Close()

	f, err := os.Create(local)
	if err != nil {
		return fmt.Errorf("sync: create %s: %w", local, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, obj.Body); err != nil {
		return fmt.Errorf("sync: write %s: %w", local, err)
	}
	m.logger.Debug("downloaded entity file", "key", key, "path", local)
	return nil
}
