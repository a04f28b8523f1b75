package sqlite

import (
	"context"
	"time"

	"github.com/kailas-cloud/labdex/internal/db"
)

// IncrBy adds val to the counter at key. A missing or expired counter restarts from zero
// with no expiry.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) error {
	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO counters (key, value, expires_at) VALUES (?, ?, NULL)
		 ON CONFLICT(key) DO UPDATE SET
		   value = CASE WHEN counters.expires_at IS NOT NULL AND counters.expires_at <= ?
		                THEN excluded.value ELSE counters.value + excluded.value END,
		   expires_at = CASE WHEN counters.expires_at IS NOT NULL AND counters.expires_at <= ?
		                THEN NULL ELSE counters.expires_at END`,
		key, val, now, now)
	if err != nil {
		return &db.Error{Op: db.OpIncrBy, Err: err}
	}
	return nil
}

// Expire sets a TTL on a counter; with nx only when it has none. Plain values and lists
// never expire in this backend.
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error {
	q := `UPDATE counters SET expires_at = ? WHERE key = ?`
	if nx {
		q += ` AND expires_at IS NULL`
	}
	if _, err := s.db.ExecContext(ctx, q, time.Now().Add(ttl).Unix(), key); err != nil {
		return &db.Error{Op: db.OpExpire, Err: err}
	}
	return nil
}

func (s *Store) counter(ctx context.Context, key string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM counters WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)`,
		key, time.Now().Unix()).Scan(&n)
	return n, err
}
