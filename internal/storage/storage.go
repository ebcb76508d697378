// Package storage persists uploaded blobs (realization photos, model
// files) and issues public URLs for them. Buckets are plain namespaces;
// a missing bucket is created on first write rather than treated as an
// error.
package storage

import (
	"context"
	"io"
)

// Storage is the blob store consumed by the upload handlers.
type Storage interface {
	// Save stores a blob under bucket/name, creating the bucket when it
	// does not exist yet.
	Save(ctx context.Context, bucket, name string, reader io.Reader) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, bucket, name string) error

	// PublicURL returns the URL under which a stored blob is served.
	PublicURL(bucket, name string) string
}

// Config holds blob storage settings.
type Config struct {
	BasePath string // Root directory for stored files.
	BaseURL  string // Public URL prefix, e.g. "/files" or a CDN origin.
}
