package document

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/labdex/internal/domain"
	domdoc "github.com/kailas-cloud/labdex/internal/domain/document"
	"github.com/kailas-cloud/labdex/internal/repository/table"
)

// store is the consumer interface for documents (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LRem(ctx context.Context, key, value string) error
}

// Repo stores project documents.
type Repo struct {
	table *table.Table
}

// New creates a document repository.
func New(s store, prefix string) *Repo {
	return &Repo{table: table.New(s, prefix, "document")}
}

// Save creates or replaces a document. Returns true if created.
func (r *Repo) Save(ctx context.Context, d domdoc.Document) (bool, error) {
	created, err := r.table.Put(ctx, d.ID(), toRow(&d))
	if err != nil {
		return false, fmt.Errorf("save document %s: %w", d.ID(), err)
	}
	return created, nil
}

// Delete removes a document by ID.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.table.Delete(ctx, id); err != nil {
		if table.IsNotFound(err) {
			return domain.ErrDocumentNotFound
		}
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	return nil
}

// Get returns a document by ID.
func (r *Repo) Get(ctx context.Context, id string) (domdoc.Document, error) {
	var row documentRow
	if err := r.table.Get(ctx, id, &row); err != nil {
		if table.IsNotFound(err) {
			return domdoc.Document{}, domain.ErrDocumentNotFound
		}
		return domdoc.Document{}, fmt.Errorf("get document %s: %w", id, err)
	}
	return fromRow(id, row), nil
}

// List returns every document in upload order.
func (r *Repo) List(ctx context.Context) ([]domdoc.Document, error) {
	return r.list(ctx, func(documentRow) bool { return true })
}

// ListByProject returns the documents of one project in upload order.
// An unknown project yields an empty list.
func (r *Repo) ListByProject(ctx context.Context, projectID string) ([]domdoc.Document, error) {
	return r.list(ctx, func(row documentRow) bool { return row.ProjectID == projectID })
}

// MarkProcessed sets the document status to PROCESSED.
func (r *Repo) MarkProcessed(ctx context.Context, id string) error {
	d, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := r.Save(ctx, d.WithStatus(domdoc.StatusProcessed)); err != nil {
		return err
	}
	return nil
}

func (r *Repo) list(ctx context.Context, keep func(documentRow) bool) ([]domdoc.Document, error) {
	docs := []domdoc.Document{}
	err := table.Each(ctx, r.table, func(id string, row documentRow) error {
		if keep(row) {
			docs = append(docs, fromRow(id, row))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}
