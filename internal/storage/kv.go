package storage

import "context"

// KV is the minimal durable key-value contract the storefront core depends
// on. Values are opaque byte slices; callers own serialization and are
// expected to discard values they cannot parse.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value, overwriting any previous one.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
