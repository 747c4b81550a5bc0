// Package blob abstracts the single-value persistence slot the bookmark
// collection is flushed to. The whole collection is always read and
// written as one atomic value; there are no partial updates.
package blob

import "context"

// Store is a single-key blob store.
type Store interface {
	// Get reads the blob. ok is false when no value has been stored yet;
	// that is not an error.
	Get(ctx context.Context) (data []byte, ok bool, err error)

	// Set replaces the blob atomically.
	Set(ctx context.Context, data []byte) error

	// Delete removes the blob. Removing an absent blob is a no-op.
	Delete(ctx context.Context) error

	// Ping reports whether the backend is reachable and writable.
	Ping(ctx context.Context) error
}
