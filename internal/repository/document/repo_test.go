package document

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/labdex/internal/db/sqlite"
	"github.com/kailas-cloud/labdex/internal/domain"
	domdoc "github.com/kailas-cloud/labdex/internal/domain/document"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(s.Close)
	return New(s, "labdex:")
}

func testDocument(t *testing.T, id, projectID string) domdoc.Document {
	t.Helper()
	d, err := domdoc.New(id, domdoc.Attrs{
		ProjectID:   projectID,
		FileName:    id + ".pdf",
		FileType:    "pdf",
		Description: "Quarterly budget report",
		UploadedBy:  "ada",
		UploadDate:  time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func ids(docs []domdoc.Document) []string {
	out := make([]string, len(docs))
	for i := range docs {
		out[i] = docs[i].ID()
	}
	return out
}

func TestSaveGet_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	d := testDocument(t, "d1", "p1")

	if _, err := repo.Save(ctx, d); err != nil {
		t.Fatal(err)
	}
	got, err := repo.Get(ctx, "d1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(d.Attrs(), got.Attrs()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := newTestRepo(t).Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestListByProject(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	for _, d := range []domdoc.Document{
		testDocument(t, "d1", "p1"),
		testDocument(t, "d2", "p2"),
		testDocument(t, "d3", "p1"),
	} {
		if _, err := repo.Save(ctx, d); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ListByProject(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"d1", "d3"}, ids(got)); diff != "" {
		t.Errorf("ListByProject mismatch (-want +got):\n%s", diff)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"d1", "d2", "d3"}, ids(all)); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	none, err := repo.ListByProject(ctx, "unknown")
	if err != nil || len(none) != 0 {
		t.Errorf("unknown project: %v %v", none, err)
	}
}

func TestMarkProcessed(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if _, err := repo.Save(ctx, testDocument(t, "d1", "p1")); err != nil {
		t.Fatal(err)
	}

	if err := repo.MarkProcessed(ctx, "d1"); err != nil {
		t.Fatalf("MarkProcessed: %v", err)
	}
	got, _ := repo.Get(ctx, "d1")
	if got.Status() != domdoc.StatusProcessed {
		t.Errorf("Status() = %q", got.Status())
	}

	if err := repo.MarkProcessed(ctx, "missing"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	for _, id := range []string{"d1", "d2"} {
		if _, err := repo.Save(ctx, testDocument(t, id, "p1")); err != nil {
			t.Fatal(err)
		}
	}

	if err := repo.Delete(ctx, "d1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	docs, err := repo.ListByProject(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"d2"}, ids(docs)); diff != "" {
		t.Errorf("remaining (-want +got):\n%s", diff)
	}
	if err := repo.Delete(ctx, "d1"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("second Delete = %v, want ErrDocumentNotFound", err)
	}
}
