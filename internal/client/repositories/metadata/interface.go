// Package metadata is a small key/value repository over the local SQLite
// database. The session store keeps the persisted token and user record
// here.
package metadata

import (
	"context"
)

// Repository stores opaque values under string keys.
//
// Get returns (nil, nil) for a missing key. Delete is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
