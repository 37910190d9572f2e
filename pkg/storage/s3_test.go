package storage

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	putInput  *s3.PutObjectInput
	putErr    error
	delInput  *s3.DeleteObjectInput
	deleteErr error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInput = in
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.delInput = in
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_Upload(t *testing.T) {
	t.Run("aws url without endpoint", func(t *testing.T) {
		cfg := testStorageConfig()
		cfg.Provider = "s3"
		cfg.Endpoint = ""
		api := &fakeS3{}
		s := NewS3StoreWithAPI(api, cfg)

		res, err := s.Upload(context.Background(), Image{
			Filename:    "sofa.jpg",
			ContentType: "image/jpeg",
			Size:        3,
			Reader:      bytes.NewReader([]byte("abc")),
		})
		require.NoError(t, err)

		assert.Equal(t, "https://rentit-images.s3.us-east-1.amazonaws.com/"+res.PublicID, res.URL)
		require.NotNil(t, api.putInput)
		assert.Equal(t, "rentit-images", aws.ToString(api.putInput.Bucket))
		assert.Equal(t, res.PublicID, aws.ToString(api.putInput.Key))
		assert.Equal(t, "image/jpeg", aws.ToString(api.putInput.ContentType))
		assert.Equal(t, int64(3), aws.ToInt64(api.putInput.ContentLength))
	})

	t.Run("compatible endpoint", func(t *testing.T) {
		cfg := testStorageConfig()
		cfg.Provider = "s3"
		s := NewS3StoreWithAPI(&fakeS3{}, cfg)

		res, err := s.Upload(context.Background(), Image{Filename: "a.png", Reader: bytes.NewReader(nil)})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/rentit-images/"+res.PublicID, res.URL)
	})

	t.Run("error", func(t *testing.T) {
		s := NewS3StoreWithAPI(&fakeS3{putErr: errors.New("denied")}, testStorageConfig())

		res, err := s.Upload(context.Background(), Image{Filename: "a.png", Reader: bytes.NewReader(nil)})
		assert.Nil(t, res)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestS3Store_Delete(t *testing.T) {
	api := &fakeS3{}
	s := NewS3StoreWithAPI(api, testStorageConfig())

	require.NoError(t, s.Delete(context.Background(), "rentit-products/a.png"))
	assert.Equal(t, "rentit-products/a.png", aws.ToString(api.delInput.Key))

	api.deleteErr = errors.New("gone")
	assert.Error(t, s.Delete(context.Background(), "x"))
}

func TestNewS3Store(t *testing.T) {
	cfg := testStorageConfig()
	cfg.Provider = "s3"

	s, err := NewS3Store(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestNewS3Store_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	s, err := NewS3Store(context.Background(), testStorageConfig())
	assert.Nil(t, s)
	assert.Error(t, err)
}
