package storage

import (
	"context"
	"fmt"
	"io"

	"rentit-backend/pkg/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

var _ ImageStore = (*MinioStore)(nil)

// MinioStore stores images in a MinIO bucket.
type MinioStore struct {
	api minioAPI
	cfg config.Storage
}

// NewMinioStore connects to MinIO and makes sure the bucket exists.
func NewMinioStore(ctx context.Context, cfg config.Storage) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return NewMinioStoreWithAPI(ctx, client, cfg)
}

// NewMinioStoreWithAPI allows injecting a mockable API (used in tests).
func NewMinioStoreWithAPI(ctx context.Context, api minioAPI, cfg config.Storage) (*MinioStore, error) {
	s := &MinioStore{api: api, cfg: cfg}

	if err := s.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return s, nil
}

func (s *MinioStore) ensureBucketExists(ctx context.Context) error {
	exists, err := s.api.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.api.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Upload puts the image under a fresh key and returns its public URL.
func (s *MinioStore) Upload(ctx context.Context, img Image) (*UploadResult, error) {
	key := objectKey(s.cfg.Folder, img.ContentType)

	size := img.Size
	if size <= 0 {
		size = -1
	}

	_, err := s.api.PutObject(ctx, s.cfg.Bucket, key, img.Reader, size, minio.PutObjectOptions{
		ContentType: img.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &UploadResult{
		URL:      publicURL(s.cfg, key),
		PublicID: key,
	}, nil
}

// Delete removes the object identified by publicID.
func (s *MinioStore) Delete(ctx context.Context, publicID string) error {
	err := s.api.RemoveObject(ctx, s.cfg.Bucket, publicID, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
