package labdex

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver     string
	addrs      []string
	password   string
	path       string
	keyPrefix  string
	completer  Completer
	windowDays int
	workers    int
	logger     *zap.Logger
	now        func() time.Time
}

// WithRedis stores data in Redis at the given addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = addrs
	}
}

// WithRedisPassword sets the Redis AUTH password.
func WithRedisPassword(password string) Option {
	return func(c *clientConfig) { c.password = password }
}

// WithSQLite stores data in an embedded SQLite file.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.driver = "sqlite"
		c.path = path
	}
}

// WithKeyPrefix namespaces every storage key (default "labdex:").
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) { c.keyPrefix = prefix }
}

// WithCompleter enables model-generated answers. Without it Ask returns the
// fallback answer.
func WithCompleter(cm Completer) Option {
	return func(c *clientConfig) { c.completer = cm }
}

// WithAnalyticsWindow sets the default project length in days used when a
// project has no end date.
func WithAnalyticsWindow(days int) Option {
	return func(c *clientConfig) { c.windowDays = days }
}

// WithWorkers bounds RecalculateAll concurrency.
func WithWorkers(n int) Option {
	return func(c *clientConfig) { c.workers = n }
}

// WithLogger sets the logger (default: no-op).
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}

// WithClock overrides the analytics time source.
func WithClock(now func() time.Time) Option {
	return func(c *clientConfig) { c.now = now }
}
