package analytics

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/labdex/internal/db/sqlite"
	domanalytics "github.com/kailas-cloud/labdex/internal/domain/analytics"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	rpushFn  func(ctx context.Context, key string, values ...string) error
	lrangeFn func(ctx context.Context, key string, start, stop int64) ([]string, error)
}

func (m *mockStore) RPush(ctx context.Context, key string, values ...string) error {
	if m.rpushFn != nil {
		return m.rpushFn(ctx, key, values...)
	}
	return nil
}

func (m *mockStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if m.lrangeFn != nil {
		return m.lrangeFn(ctx, key, start, stop)
	}
	return nil, nil
}

func newSQLiteRepo(t *testing.T) *Repo {
	t.Helper()
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(s.Close)
	return New(s, "labdex:")
}

func testRecord(t *testing.T, id, projectID string, calculated time.Time) domanalytics.Record {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r, err := domanalytics.New(id, domanalytics.Attrs{
		ProjectID:          projectID,
		ProjectTitle:       "Title " + projectID,
		StartDate:          start,
		EndDate:            start.AddDate(0, 0, 100),
		ActualEndDate:      start.AddDate(0, 0, 100),
		DurationDays:       100,
		ActualDurationDays: 25,
		CompletionRate:     25,
		OnTimeCompletion:   true,
		CalculatedDate:     calculated,
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestAppendHistory_NewestFirst(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	d := time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC)

	first := testRecord(t, "r1", "p1", d)
	second := testRecord(t, "r2", "p1", d.AddDate(0, 0, 1))
	other := testRecord(t, "r3", "p2", d)
	for _, r := range []domanalytics.Record{first, second, other} {
		if err := repo.Append(ctx, r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	hist, err := repo.History(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 || hist[0].ID() != "r2" || hist[1].ID() != "r1" {
		t.Fatalf("History = %+v", hist)
	}
	if diff := cmp.Diff(first.Attrs(), hist[1].Attrs()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for i := range all {
		ids = append(ids, all[i].ID())
	}
	if diff := cmp.Diff([]string{"r3", "r2", "r1"}, ids); diff != "" {
		t.Errorf("All order mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory_Unknown(t *testing.T) {
	hist, err := newSQLiteRepo(t).History(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 0 {
		t.Errorf("expected empty history, got %d", len(hist))
	}
}

func TestAppend_Keys(t *testing.T) {
	var keys []string
	ms := &mockStore{rpushFn: func(_ context.Context, key string, _ ...string) error {
		keys = append(keys, key)
		return nil
	}}
	repo := New(ms, "labdex:")

	if err := repo.Append(context.Background(), testRecord(t, "r1", "p1", time.Now())); err != nil {
		t.Fatal(err)
	}
	want := []string{"labdex:analytics:project:p1", "labdex:analytics:log"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestAppend_Error(t *testing.T) {
	ms := &mockStore{rpushFn: func(context.Context, string, ...string) error { return errors.New("READONLY") }}
	if err := New(ms, "x:").Append(context.Background(), testRecord(t, "r1", "p1", time.Now())); err == nil {
		t.Fatal("expected error")
	}
}

func TestAll_CorruptEntry(t *testing.T) {
	ms := &mockStore{lrangeFn: func(context.Context, string, int64, int64) ([]string, error) {
		return []string{"{not json"}, nil
	}}
	if _, err := New(ms, "x:").All(context.Background()); err == nil {
		t.Fatal("expected unmarshal error")
	}
}
