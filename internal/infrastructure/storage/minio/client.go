// Package minio stores uploaded media (promoter avatars, happening covers)
// in an S3-compatible bucket and hands back public URLs.
package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config captures the settings for the media bucket.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	// PublicBaseURL is the externally reachable prefix objects are served
	// from, e.g. a CDN in front of the bucket.
	PublicBaseURL string
}

// Client uploads media objects and returns their public URLs.
type Client struct {
	api           *minio.Client
	bucket        string
	publicBaseURL string
}

// NewClient connects to the object store and ensures the bucket exists.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	c := &Client{
		api:           api,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}

	exists, err := api.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := api.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return c, nil
}

// Upload stores the object under key and returns its public URL.
func (c *Client) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := c.api.PutObject(ctx, c.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", c.publicBaseURL, c.bucket, key), nil
}
