// Package storage holds the blob store that keeps uploaded complaint files.
// The relational rows reference blobs by key; the store never learns about
// complaints, it only moves bytes.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type BlobStore interface {
	Save(ctx context.Context, key string, content io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// GenerateKey builds a fresh blob key from a timestamp, a random fragment and
// the original file extension. Two files in the same request, or in two
// concurrent requests, never share a key.
func GenerateKey(originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)
}
