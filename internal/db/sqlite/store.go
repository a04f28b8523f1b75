// Package sqlite implements db.Store on an embedded SQLite file, for single-node
// deployments and the CLI seed/recalculate commands that should not need a Redis server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // pure-Go driver registered as "sqlite"

	"github.com/kailas-cloud/labdex/internal/db"
)

// DriverName is the database/sql driver used by the store.
const DriverName = "sqlite"

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS list_items (
	seq   INTEGER PRIMARY KEY AUTOINCREMENT,
	key   TEXT NOT NULL,
	value TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_list_items_key ON list_items(key, seq);
CREATE TABLE IF NOT EXISTS counters (
	key        TEXT PRIMARY KEY,
	value      INTEGER NOT NULL,
	expires_at INTEGER
);
`

// Store implements db.Store over database/sql.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and applies the schema.
func NewStore(path string) (*Store, error) {
	conn, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// single writer
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, &db.Error{Op: db.OpMigrate, Err: err}
	}

	return &Store{db: conn}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady pings once; a local file is either usable or not.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Ping(ctx)
}

// Get retrieves a value by key. Live counters read back as decimal strings, as in Redis.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}

	n, err := s.counter(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return []byte(strconv.FormatInt(n, 10)), nil
}

// Set stores a value at the given key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Del deletes a key whether it holds a value or a list.
func (s *Store) Del(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM list_items WHERE key = ?`, key); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM counters WHERE key = ?`, key); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// Exists checks if a key holds a value, a non-empty list or a live counter.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM kv WHERE key = ?)
		      + (SELECT COUNT(*) FROM list_items WHERE key = ?)
		      + (SELECT COUNT(*) FROM counters WHERE key = ? AND (expires_at IS NULL OR expires_at > ?))`,
		key, key, key, time.Now().Unix()).Scan(&n)
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	return n > 0, nil
}
