// Package kv is a small JSON document store shared by the cart, catalog and
// auth services. Values are stored as JSON blobs under flat string keys and
// read failures are contained: callers get a miss, never an exception path.
package kv

import "context"

type Store interface {
	// Read unmarshals the value at key into dest. It reports false when the
	// key is absent, the backend fails, or the stored blob does not parse;
	// a corrupt entry is treated as absent rather than migrated.
	Read(ctx context.Context, key string, dest any) bool

	Write(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
