// Package storage hosts product images on an object store and returns the
// public URL and provider id for each upload.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"

	"rentit-backend/pkg/config"

	"github.com/google/uuid"
)

// Image is an image ready to be uploaded.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadResult identifies a stored image.
type UploadResult struct {
	URL      string
	PublicID string
}

// ImageStore uploads and removes product images.
type ImageStore interface {
	Upload(ctx context.Context, img Image) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// New builds the ImageStore selected by cfg.Provider.
func New(ctx context.Context, cfg config.Storage) (ImageStore, error) {
	switch cfg.Provider {
	case "", "minio":
		return NewMinioStore(ctx, cfg)
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// extensionFor maps a content type to a file extension. Unknown types get
// none.
func extensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if ext, ok := imageExtensions[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// objectKey places the image under folder with a random name. The
// extension follows the content type; the client filename is not used.
func objectKey(folder, contentType string) string {
	key := uuid.NewString() + extensionFor(contentType)
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return key
	}
	return folder + "/" + key
}

// endpointURL adds a scheme to a bare host:port endpoint.
func endpointURL(endpoint string, useSSL bool) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return strings.TrimRight(endpoint, "/")
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// publicURL builds a path-style URL for key. A configured public base URL
// (CDN or reverse proxy) wins over the storage endpoint.
func publicURL(cfg config.Storage, key string) string {
	base := cfg.PublicBaseURL
	if base == "" {
		base = endpointURL(cfg.Endpoint, cfg.UseSSL)
	}
	return strings.TrimRight(base, "/") + "/" + cfg.Bucket + "/" + key
}
