// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider (MinIO, AWS S3, ...).
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned when the requested key does not exist in the bucket.
var ErrObjectNotFound = errors.New("object not found")

// Object describes a blob as acknowledged by the backend after a write.
type Object struct {
	Key  string
	Size int64
	ETag string
}

// Storage is the interface for writing, reading and removing objects in a single bucket.
type Storage interface {
	// EnsureBucket creates the bucket if it does not exist. It doubles as a reachability check.
	EnsureBucket(ctx context.Context) error
	// Upload streams data to the store under the given key.
	// size is the exact byte count, or -1 when unknown.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (Object, error)
	// Download opens a forward-only reader for key. The caller must close it.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// Bucket returns the bucket name objects are written to.
	Bucket() string
}
