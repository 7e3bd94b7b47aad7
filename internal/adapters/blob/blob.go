package blob

import (
	"context"
)

// BlobStore provides an abstraction over binary object storage. Every
// stored object is addressable by the URL returned from Put; the record
// store only ever persists that URL, never the bytes.
type BlobStore interface {
	// Put stores data under key and returns a retrievable URL for it
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Get retrieves the object stored under key
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object stored under key
	Delete(ctx context.Context, key string) error

	// Exists checks whether an object exists under key
	Exists(ctx context.Context, key string) (bool, error)

	// Close cleans up any resources used by the implementation
	Close() error
}
