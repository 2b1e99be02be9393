// Package storage persists uploaded files in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// BlobStore uploads and deletes binary objects, returning a public URL on upload.
type BlobStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
}

// S3Store is a BlobStore backed by an S3-compatible service (AWS, minio).
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// Options configures an S3Store.
type Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicURL is the base under which uploaded objects are reachable
	// (e.g. the minio endpoint plus bucket, or a CDN host).
	PublicURL string
}

// NewS3Store builds an S3 client with static credentials.
func NewS3Store(ctx context.Context, opts Options) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := opts.PublicURL
	if publicURL == "" {
		publicURL = strings.TrimSuffix(opts.Endpoint, "/") + "/" + opts.Bucket
	}

	return &S3Store{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

// ObjectKey builds a collision-free key under folder, dated for housekeeping.
func ObjectKey(folder, ext string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%v%s", folder, d.Year(), d.Month(), uuid.New(), ext)
}

// Upload stores the object and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}

// Delete removes the object.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
