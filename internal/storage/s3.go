// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/MKhiriev/filekko/internal/config"
	"github.com/MKhiriev/filekko/internal/logger"
)

// objectPutter is the subset of *s3.Client used by S3Storage.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage uploads files to an S3 (or MinIO) bucket.
type S3Storage struct {
	client  objectPutter
	bucket  string
	baseURL string
	logger  *logger.Logger
}

var newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
	return s3.NewFromConfig(cfg, optFns...)
}

// NewS3Storage builds the client from the bucket settings. Static
// credentials are used when an access key is configured, otherwise the
// default AWS credential chain applies. With a custom endpoint path-style
// addressing is enabled.
func NewS3Storage(ctx context.Context, cfg config.S3, baseURL string, log *logger.Logger) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	if baseURL == "" {
		baseURL = defaultBucketURL(cfg)
	}

	log.Debug().Str("bucket", cfg.Bucket).Msg("s3 file storage ready")
	return &S3Storage{client: client, bucket: cfg.Bucket, baseURL: baseURL, logger: log}, nil
}

func (s *S3Storage) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*S3Storage.Save").Str("key", key).Msg("failed to upload object")
		return "", fmt.Errorf("%w: %w", ErrSavingFile, err)
	}

	return publicURL(s.baseURL, key), nil
}

func defaultBucketURL(cfg config.S3) string {
	if cfg.Endpoint != "" {
		return publicURL(cfg.Endpoint, cfg.Bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}
