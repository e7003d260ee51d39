// Package storage implements the client's persisted key-value store: durable
// string-keyed state that survives restarts. It backs session persistence and
// deliberately offers no transactional guarantees beyond single-statement
// atomicity.
package storage

import "context"

// KV is a durable key-value store. Get returns (nil, nil) for a missing key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
