// Package storage persists opaque blobs under string keys. The service
// stores only ciphertext here; plaintext never reaches a BlobStore.
package storage

import "context"

// BlobStore is the object-storage abstraction used by the file service.
type BlobStore interface {
	// Put writes data under key, overwriting any existing object.
	Put(ctx context.Context, key string, data []byte) error

	// Get reads the full object stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
}
