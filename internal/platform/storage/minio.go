// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package storage wraps an S3-compatible object store (MinIO in development,
any S3 endpoint in production) for submission media.

Objects are private. Drafts and submissions keep only object keys; readers
receive short-lived presigned GET URLs.
*/
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options configures the object store connection.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	UseSSL    bool
}

// Client is a bucket-scoped MinIO client.
type Client struct {
	minio  *minio.Client
	bucket string
	region string
}

// New connects to the object store. It does not touch the network; call
// [Client.EnsureBucket] at startup to validate connectivity.
func New(options Options) (*Client, error) {
	if options.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket name is required")
	}

	client, err := minio.New(options.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(options.AccessKey, options.SecretKey, ""),
		Secure: options.UseSSL,
		Region: options.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create client: %w", err)
	}

	return &Client{minio: client, bucket: options.Bucket, region: options.Region}, nil
}

// EnsureBucket creates the media bucket when it does not exist yet.
func (client *Client) EnsureBucket(ctx context.Context, logger *slog.Logger) error {
	exists, err := client.minio.BucketExists(ctx, client.bucket)
	if err != nil {
		return fmt.Errorf("storage: bucket check failed: %w", err)
	}
	if exists {
		return nil
	}

	if err := client.minio.MakeBucket(ctx, client.bucket, minio.MakeBucketOptions{Region: client.region}); err != nil {
		return fmt.Errorf("storage: failed to create bucket %s: %w", client.bucket, err)
	}

	logger.Info("storage_bucket_created", slog.String("bucket", client.bucket))
	return nil
}

// Ping reports whether the bucket is reachable.
func (client *Client) Ping(ctx context.Context) error {
	if _, err := client.minio.BucketExists(ctx, client.bucket); err != nil {
		return fmt.Errorf("storage: ping failed: %w", err)
	}
	return nil
}

// Put uploads an object. size may be -1 when unknown.
func (client *Client) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := client.minio.PutObject(ctx, client.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("storage: failed to upload %s: %w", key, err)
	}
	return nil
}

// PresignGet returns a time-limited download URL for key.
func (client *Client) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	presigned, err := client.minio.PresignedGetObject(ctx, client.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("storage: failed to presign %s: %w", key, err)
	}
	return presigned.String(), nil
}

// Remove deletes an object. Removing a missing key is not an error.
func (client *Client) Remove(ctx context.Context, key string) error {
	if err := client.minio.RemoveObject(ctx, client.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: failed to remove %s: %w", key, err)
	}
	return nil
}

// # Content Types

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".srt":  "application/x-subrip",
	".vtt":  "text/vtt",
}

// ContentTypeFor maps a file name to its media type, or "" when the
// extension is not accepted.
func ContentTypeFor(fileName string) string {
	return contentTypes[strings.ToLower(path.Ext(fileName))]
}
