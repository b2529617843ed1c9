package providers

import (
	"context"
)

// CacheProvider defines the key-value store boundary used for
// content-addressed document summaries. Semantics are last-write-wins
// per key; no transactions.
type CacheProvider interface {
	// Exists checks if a key is present
	Exists(ctx context.Context, key string) (bool, error)

	// Get retrieves a value by key
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores a value under a key with associated lookup tags
	Put(ctx context.Context, key string, value []byte, tags []string) error
}
