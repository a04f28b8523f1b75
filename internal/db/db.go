package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
// Repositories depend on the narrow sub-interfaces only.
type Store interface {
	Pinger
	KVStore
	ListStore
	CounterStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations over opaque byte values.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ListStore provides append-only ordered lists.
type ListStore interface {
	// RPush appends values to the tail of the list at key.
	RPush(ctx context.Context, key string, values ...string) error
	// LRange returns list elements between start and stop inclusive; -1 means the last element.
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	// LRem removes every element equal to value.
	LRem(ctx context.Context, key, value string) error
}

// CounterStore provides integer counters with optional expiry.
type CounterStore interface {
	// IncrBy adds val to the counter at key, creating it at zero.
	IncrBy(ctx context.Context, key string, val int64) error
	// Expire sets a TTL on key. With nx the TTL is only set when the key has none.
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}
