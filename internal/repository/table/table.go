// Package table stores JSON entities in a db.KVStore with an insertion-ordered
// id list, so entities can be listed in a stable source order on any backend.
package table

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/labdex/internal/db"
)

// store is the consumer interface for tables (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LRem(ctx context.Context, key, value string) error
}

// Table is a named entity set. Keys: {prefix}{name}:{id}, index {prefix}{name}:ids.
type Table struct {
	store  store
	prefix string
	name   string
}

// New creates a table.
func New(s store, prefix, name string) *Table {
	return &Table{store: s, prefix: prefix, name: name}
}

// Key returns the storage key of an entity.
func (t *Table) Key(id string) string {
	return fmt.Sprintf("%s%s:%s", t.prefix, t.name, id)
}

func (t *Table) indexKey() string {
	return fmt.Sprintf("%s%s:ids", t.prefix, t.name)
}

// Put stores v under id. Returns true if the entity was created.
func (t *Table) Put(ctx context.Context, id string, v any) (bool, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("marshal %s %s: %w", t.name, id, err)
	}

	key := t.Key(id)
	exists, err := t.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}
	if err := t.store.Set(ctx, key, data); err != nil {
		return false, fmt.Errorf("set %s: %w", key, err)
	}
	if exists {
		return false, nil
	}
	if err := t.store.RPush(ctx, t.indexKey(), id); err != nil {
		// Without the index entry the entity is unreachable from List.
		return false, errors.Join(fmt.Errorf("index %s: %w", key, err), t.store.Del(ctx, key))
	}
	return true, nil
}

// Get decodes the entity stored under id into v. Missing keys surface as
// db.ErrKeyNotFound.
func (t *Table) Get(ctx context.Context, id string, v any) error {
	key := t.Key(id)
	data, err := t.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

// IDs returns every id in insertion order.
func (t *Table) IDs(ctx context.Context) ([]string, error) {
	ids, err := t.store.LRange(ctx, t.indexKey(), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", t.indexKey(), err)
	}
	return ids, nil
}

// Delete removes the entity and its index entry. A missing entity yields
// db.ErrKeyNotFound.
func (t *Table) Delete(ctx context.Context, id string) error {
	key := t.Key(id)
	ok, err := t.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("exists %s: %w", key, err)
	}
	if !ok {
		return fmt.Errorf("delete %s: %w", key, db.ErrKeyNotFound)
	}
	if err := t.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	if err := t.store.LRem(ctx, t.indexKey(), id); err != nil {
		return fmt.Errorf("lrem %s: %w", t.indexKey(), err)
	}
	return nil
}

// Each decodes every entity in insertion order, calling fn after each decode.
// Index entries whose entity is gone are skipped.
func Each[T any](ctx context.Context, t *Table, fn func(id string, row T) error) error {
	ids, err := t.IDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		var row T
		if err := t.Get(ctx, id, &row); err != nil {
			if IsNotFound(err) {
				continue
			}
			return err
		}
		if err := fn(id, row); err != nil {
			return err
		}
	}
	return nil
}

// IsNotFound reports whether err means the entity does not exist.
func IsNotFound(err error) bool { return errors.Is(err, db.ErrKeyNotFound) }
