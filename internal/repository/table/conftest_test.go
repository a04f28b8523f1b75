package table

import (
	"context"

	"github.com/kailas-cloud/labdex/internal/db"
)

// mockStore implements the consumer interface for tests. With no func set it
// behaves like an in-memory store.
type mockStore struct {
	kv    map[string][]byte
	lists map[string][]string

	setFn   func(ctx context.Context, key string, value []byte) error
	rpushFn func(ctx context.Context, key string, values ...string) error
	delFn   func(ctx context.Context, key string) error
}

func newMockStore() *mockStore {
	return &mockStore{kv: map[string][]byte{}, lists: map[string][]string{}}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	m.kv[key] = value
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	delete(m.kv, key)
	return nil
}

func (m *mockStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.kv[key]
	return ok, nil
}

func (m *mockStore) RPush(ctx context.Context, key string, values ...string) error {
	if m.rpushFn != nil {
		return m.rpushFn(ctx, key, values...)
	}
	m.lists[key] = append(m.lists[key], values...)
	return nil
}

func (m *mockStore) LRange(_ context.Context, key string, _, _ int64) ([]string, error) {
	return m.lists[key], nil
}

func (m *mockStore) LRem(_ context.Context, key, value string) error {
	kept := m.lists[key][:0]
	for _, v := range m.lists[key] {
		if v != value {
			kept = append(kept, v)
		}
	}
	m.lists[key] = kept
	return nil
}
