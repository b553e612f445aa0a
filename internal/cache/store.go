// Package cache provides the expiring key store used to de-duplicate engagement counting.
package cache

import (
	"context"
	"time"
)

// Store is an expiring key-value store.
//
// Add writes key only when no live entry exists and reports whether it did.
// A false result with a nil error means the key was already present.
type Store interface {
	Add(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}
