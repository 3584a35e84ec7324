package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type localUploader struct {
	dir       string
	urlPrefix string
}

// NewLocalUploader stores files under dir, creating it if missing. Keys may
// contain forward-slash subpaths; anything escaping dir is rejected.
func NewLocalUploader(dir string) (FileUploader, error) {
	if dir == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &localUploader{dir: dir, urlPrefix: "uploads"}, nil
}

func (u *localUploader) resolve(key string) (string, error) {
	cleaned := path.Clean("/" + key)
	if cleaned == "/" {
		return "", errors.New("empty storage key")
	}
	return filepath.Join(u.dir, filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))), nil
}

func (u *localUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	dst, err := u.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to create file for key %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("failed to write file for key %s: %w", key, err)
	}

	return &UploadResult{
		Key:      key,
		Location: u.GetPublicURL(key),
	}, nil
}

func (u *localUploader) Delete(ctx context.Context, key string) error {
	dst, err := u.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file for key %s: %w", key, err)
	}
	return nil
}

func (u *localUploader) GetPublicURL(key string) string {
	if key == "" {
		return ""
	}
	return u.urlPrefix + "/" + strings.TrimPrefix(key, "/")
}
