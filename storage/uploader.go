package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
}

// FileUploader is the photo storage port. The local-disk adapter backs the
// on-site setup (photos served from /uploads); the R2 adapter backs hosted
// deployments.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	// GetPublicURL returns the client-facing reference for a stored key:
	// a relative path for local storage, an absolute URL for R2.
	GetPublicURL(key string) string
}
