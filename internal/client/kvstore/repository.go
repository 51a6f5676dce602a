// Package kvstore is the client's durable key/value storage: a sqlite-backed
// repository plus a typed Store with the well-known keys the stores share.
package kvstore

import "context"

// Repository persists string values by key.
// Get reports ok=false (and no error) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes all pairs atomically.
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
