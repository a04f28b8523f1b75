package budget

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/labdex/internal/db"
)

// Period is the window a token counter covers.
type Period string

// Counter windows.
const (
	Daily   Period = "daily"
	Monthly Period = "monthly"
)

// store is the consumer interface for budget operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store persists per-provider token counters, one key per calendar window:
// {prefix}budget:{provider}:daily:2006-01-02 and {prefix}budget:{provider}:monthly:2006-01.
type Store struct {
	store    store
	prefix   string
	dailyTTL time.Duration
	monthTTL time.Duration
}

// New creates a budget store.
// dailyTTL is the TTL for daily keys (recommended: 48h).
// monthTTL is the TTL for monthly keys (recommended: 62 days).
func New(s store, prefix string, dailyTTL, monthTTL time.Duration) *Store {
	return &Store{store: s, prefix: prefix, dailyTTL: dailyTTL, monthTTL: monthTTL}
}

// Add increments the counter of the window containing at.
func (s *Store) Add(ctx context.Context, provider string, p Period, at time.Time, tokens int64) error {
	key := s.key(provider, p, at)
	if err := s.store.IncrBy(ctx, key, tokens); err != nil {
		return fmt.Errorf("budget incr %s: %w", key, err)
	}

	// Only the first write of a window sets its TTL.
	if err := s.store.Expire(ctx, key, s.ttl(p), true); err != nil {
		return fmt.Errorf("budget expire %s: %w", key, err)
	}
	return nil
}

// Used returns the tokens recorded in the window containing at. Missing counters read as 0.
func (s *Store) Used(ctx context.Context, provider string, p Period, at time.Time) (int64, error) {
	key := s.key(provider, p, at)
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("budget get %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("budget get %s parse: %w", key, err)
	}
	return val, nil
}

func (s *Store) key(provider string, p Period, at time.Time) string {
	at = at.UTC()
	stamp := at.Format("2006-01-02")
	if p == Monthly {
		stamp = at.Format("2006-01")
	}
	return fmt.Sprintf("%sbudget:%s:%s:%s", s.prefix, provider, p, stamp)
}

func (s *Store) ttl(p Period) time.Duration {
	if p == Daily {
		return s.dailyTTL
	}
	return s.monthTTL
}
