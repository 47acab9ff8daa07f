// Package s3 implements the storage.Backend interface on top of AWS S3 or any
// S3-compatible service (MinIO, Cloudflare R2, ...).
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/user/inkstream-go/storage"
)

// Config options for the S3 backend
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
	PublicBaseURL   string // Base URL under which stored objects are publicly reachable
}

// Backend is an AWS S3 implementation of the storage.Backend interface
type Backend struct {
	client        *s3.Client
	bucket        string
	region        string
	publicBaseURL string
}

// New creates a new S3 storage backend
func New(cfg Config) (storage.Backend, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	// Static credentials when provided; otherwise the SDK's default chain.
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	return &Backend{
		client:        client,
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Store uploads the payload and returns its durable reference. Object keys
// are uuid-based so concurrent uploads of identically named files never
// collide.
func (b *Backend) Store(ctx context.Context, folder, filename, contentType string, r io.Reader) (*storage.StoredObject, error) {
	key := objectKey(folder, filename)

	uploader := manager.NewUploader(b.client)
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := uploader.Upload(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &storage.StoredObject{Key: key, URL: b.objectURL(key)}, nil
}

// Remove deletes content from S3
func (b *Backend) Remove(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Open downloads content directly from S3
func (b *Backend) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	result, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download object: %w", err)
	}
	return result.Body, nil
}

// objectURL derives the stable client-facing URL for a key. Presigned URLs
// expire, so the reference persisted with a post is built from a fixed base.
func (b *Backend) objectURL(key string) string {
	if b.publicBaseURL != "" {
		return b.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.bucket, b.region, key)
}

// objectKey builds a unique key under folder, keeping only the original
// file extension.
func objectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := uuid.New().String() + ext
	if folder == "" {
		return name
	}
	return strings.Trim(folder, "/") + "/" + name
}
