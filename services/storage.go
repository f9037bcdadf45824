package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Storage hands out presigned S3 URLs for thumbnails and avatars. The
// API never proxies image bytes; clients talk to the object store
// directly with a short-lived URL.
type Storage struct {
	presigner *s3.PresignClient
	bucket    string
	expiry    time.Duration
}

func NewStorage(ctx context.Context, bucket string) (*Storage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Storage{
		presigner: s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
		bucket:    bucket,
		expiry:    15 * time.Minute,
	}, nil
}

// NewUploadKey builds a collision-free object key under the given
// prefix ("thumbnails", "avatars").
func NewUploadKey(prefix, filename string) string {
	return fmt.Sprintf("%s/%s-%s", prefix, uuid.NewString(), filename)
}

// UploadURL returns a presigned PUT URL for the key.
func (s *Storage) UploadURL(ctx context.Context, key, contentType string) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}
	return req.URL, nil
}

// DownloadURL returns a presigned GET URL for the key.
func (s *Storage) DownloadURL(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign download for %s: %w", key, err)
	}
	return req.URL, nil
}
