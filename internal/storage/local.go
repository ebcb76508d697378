package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage stores blobs on the local filesystem.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a filesystem-backed store rooted at
// cfg.BasePath.
func NewLocalStorage(cfg Config) (*LocalStorage, error) {
	basePath := strings.TrimSpace(cfg.BasePath)
	if basePath == "" {
		basePath = "data/uploads"
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("storage: create base dir: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// Save writes a blob under bucket/name, creating the bucket directory
// when missing.
func (s *LocalStorage) Save(ctx context.Context, bucket, name string, reader io.Reader) error {
	bucket, name, errClean := cleanBucketName(bucket, name)
	if errClean != nil {
		return errClean
	}

	dir := filepath.Join(s.basePath, bucket)
	if errMkdir := os.MkdirAll(dir, 0755); errMkdir != nil {
		return fmt.Errorf("storage: create bucket %s: %w", bucket, errMkdir)
	}

	fullPath := filepath.Join(dir, name)
	file, errCreate := os.Create(fullPath)
	if errCreate != nil {
		return fmt.Errorf("storage: create file: %w", errCreate)
	}
	defer file.Close()

	if _, errCopy := io.Copy(file, reader); errCopy != nil {
		_ = os.Remove(fullPath)
		return fmt.Errorf("storage: write file: %w", errCopy)
	}
	return nil
}

// Delete removes a blob; a missing file is ignored.
func (s *LocalStorage) Delete(ctx context.Context, bucket, name string) error {
	bucket, name, errClean := cleanBucketName(bucket, name)
	if errClean != nil {
		return errClean
	}
	errRemove := os.Remove(filepath.Join(s.basePath, bucket, name))
	if errRemove != nil && !os.IsNotExist(errRemove) {
		return fmt.Errorf("storage: delete file: %w", errRemove)
	}
	return nil
}

// PublicURL returns the serving URL for a stored blob.
func (s *LocalStorage) PublicURL(bucket, name string) string {
	return s.baseURL + "/" + bucket + "/" + name
}

// BasePath exposes the storage root so the server can mount it as a
// static file route.
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

// cleanBucketName rejects path traversal in bucket or blob names.
func cleanBucketName(bucket, name string) (string, string, error) {
	bucket = strings.TrimSpace(bucket)
	name = strings.TrimSpace(name)
	if bucket == "" || name == "" {
		return "", "", fmt.Errorf("storage: empty bucket or name")
	}
	if bucket != filepath.Base(bucket) || name != filepath.Base(name) {
		return "", "", fmt.Errorf("storage: invalid bucket or name")
	}
	if strings.HasPrefix(bucket, ".") || strings.HasPrefix(name, "..") {
		return "", "", fmt.Errorf("storage: invalid bucket or name")
	}
	return bucket, name, nil
}
