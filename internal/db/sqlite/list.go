package sqlite

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/labdex/internal/db"
)

// RPush appends values to the list at key in a single transaction.
func (s *Store) RPush(ctx context.Context, key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpRPush, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO list_items (key, value) VALUES (?, ?)`)
	if err != nil {
		return &db.Error{Op: db.OpRPush, Err: err}
	}
	defer stmt.Close()

	for _, v := range values {
		if _, err := stmt.ExecContext(ctx, key, v); err != nil {
			return &db.Error{Op: db.OpRPush, Err: fmt.Errorf("key %s: %w", key, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpRPush, Err: err}
	}
	return nil
}

// LRange returns list elements in [start, stop] with Redis index semantics.
func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT value FROM list_items WHERE key = ? ORDER BY seq`, key)
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}
	defer rows.Close()

	var all []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, &db.Error{Op: db.OpLRange, Err: err}
		}
		all = append(all, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}

	from, to, ok := rangeBounds(int64(len(all)), start, stop)
	if !ok {
		return []string{}, nil
	}
	return all[from : to+1], nil
}

// LRem removes every element equal to value.
func (s *Store) LRem(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM list_items WHERE key = ? AND value = ?`, key, value); err != nil {
		return &db.Error{Op: db.OpLRem, Err: err}
	}
	return nil
}

// rangeBounds normalizes Redis LRANGE indexes against a list of length n.
func rangeBounds(n, start, stop int64) (from, to int64, ok bool) {
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start > stop {
		return 0, 0, false
	}
	return start, stop, true
}
