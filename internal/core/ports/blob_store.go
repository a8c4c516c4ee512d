package ports

import (
	"context"
	"io"
	"time"
)

// BlobStore stores photo content under caller-chosen object names. The
// portal treats it as opaque: store, remove, and produce a time-limited URL.
type BlobStore interface {
	Put(ctx context.Context, objectName, contentType string, r io.Reader, size int64) error
	Remove(ctx context.Context, objectName string) error
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}
