// Package cache provides the shared key/value store with per-entry
// expiration used by the generation pipeline. Two implementations exist: a
// Redis-backed store for deployments and an in-process map for local runs
// and tests.
package cache

import (
	"context"
	"time"
)

// Store is the per-entry-TTL key/value contract consumed by the generation
// services. Get reports absence without error; entries are never invalidated
// except by expiry or DeleteByPrefix.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}
