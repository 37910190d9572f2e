package storage

import (
	"context"
	"fmt"

	"rentit-backend/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

var _ ImageStore = (*S3Store)(nil)

// S3Store stores images in an S3 bucket. A non-empty endpoint points the
// client at an S3-compatible service using path-style addressing.
type S3Store struct {
	api s3API
	cfg config.Storage
}

// NewS3Store builds an S3 client from static credentials.
func NewS3Store(ctx context.Context, cfg config.Storage) (*S3Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(cfg.Endpoint, cfg.UseSSL))
			o.UsePathStyle = true
		}
	})

	return NewS3StoreWithAPI(client, cfg), nil
}

// NewS3StoreWithAPI allows injecting a mockable API (used in tests).
func NewS3StoreWithAPI(api s3API, cfg config.Storage) *S3Store {
	return &S3Store{api: api, cfg: cfg}
}

// Upload puts the image under a fresh key and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, img Image) (*UploadResult, error) {
	key := objectKey(s.cfg.Folder, img.ContentType)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        img.Reader,
		ContentType: aws.String(img.ContentType),
	}
	if img.Size > 0 {
		input.ContentLength = aws.Int64(img.Size)
	}

	if _, err := s.api.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &UploadResult{
		URL:      s.objectURL(key),
		PublicID: key,
	}, nil
}

// Delete removes the object identified by publicID.
func (s *S3Store) Delete(ctx context.Context, publicID string) error {
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *S3Store) objectURL(key string) string {
	if s.cfg.PublicBaseURL != "" || s.cfg.Endpoint != "" {
		return publicURL(s.cfg, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
