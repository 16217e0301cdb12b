package kv

import "context"

// Store is the durable key-value medium everything social persists through.
// Values are opaque JSON blobs; there are no transactions and no schema, so
// callers own the read-modify-write discipline on shared keys.
type Store interface {
	// Get returns the value for key. The bool reports whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put writes value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// ListKeys returns all keys starting with prefix, in no particular order.
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}
