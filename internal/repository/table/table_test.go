package table

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type row struct {
	Name string `json:"name"`
}

func TestPut_CreateThenUpdate(t *testing.T) {
	ms := newMockStore()
	tbl := New(ms, "labdex:", "project")
	ctx := context.Background()

	created, err := tbl.Put(ctx, "p1", row{Name: "a"})
	if err != nil || !created {
		t.Fatalf("first Put: created=%v err=%v", created, err)
	}
	created, err = tbl.Put(ctx, "p1", row{Name: "b"})
	if err != nil || created {
		t.Fatalf("second Put: created=%v err=%v", created, err)
	}

	if got := string(ms.kv["labdex:project:p1"]); got != `{"name":"b"}` {
		t.Errorf("stored %s", got)
	}
	if diff := cmp.Diff([]string{"p1"}, ms.lists["labdex:project:ids"]); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}
}

func TestPut_SetError(t *testing.T) {
	ms := newMockStore()
	ms.setFn = func(context.Context, string, []byte) error { return errors.New("OOM") }

	if _, err := New(ms, "x:", "t").Put(context.Background(), "1", row{}); err == nil {
		t.Fatal("expected error")
	}
	if len(ms.lists) != 0 {
		t.Error("index must not be written when SET fails")
	}
}

func TestPut_IndexErrorRollsBack(t *testing.T) {
	ms := newMockStore()
	ms.rpushFn = func(context.Context, string, ...string) error { return errors.New("conn reset") }

	if _, err := New(ms, "x:", "t").Put(context.Background(), "1", row{}); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := ms.kv["x:t:1"]; ok {
		t.Error("entity should be removed after index failure")
	}
}

func TestGet_NotFound(t *testing.T) {
	var r row
	err := New(newMockStore(), "x:", "t").Get(context.Background(), "nope", &r)
	if !IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestEach_InsertionOrderSkipsDangling(t *testing.T) {
	ms := newMockStore()
	tbl := New(ms, "x:", "t")
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		if _, err := tbl.Put(ctx, id, row{Name: id}); err != nil {
			t.Fatal(err)
		}
	}
	delete(ms.kv, "x:t:a")

	var got []string
	err := Each(ctx, tbl, func(id string, r row) error {
		got = append(got, id+"="+r.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"c=c", "b=b"}, got); diff != "" {
		t.Errorf("Each mismatch (-want +got):\n%s", diff)
	}
}

func TestDelete(t *testing.T) {
	ms := newMockStore()
	tbl := New(ms, "x:", "t")
	ctx := context.Background()
	_, _ = tbl.Put(ctx, "1", row{})
	_, _ = tbl.Put(ctx, "2", row{})

	if err := tbl.Delete(ctx, "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids, _ := tbl.IDs(ctx)
	if diff := cmp.Diff([]string{"2"}, ids); diff != "" {
		t.Errorf("IDs mismatch (-want +got):\n%s", diff)
	}

	if err := tbl.Delete(ctx, "1"); !IsNotFound(err) {
		t.Errorf("second delete: expected not found, got %v", err)
	}
}
