package project

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/labdex/internal/domain"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
	"github.com/kailas-cloud/labdex/internal/repository/table"
)

// store is the consumer interface for projects (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LRem(ctx context.Context, key, value string) error
}

// Repo stores research projects.
type Repo struct {
	table *table.Table
}

// New creates a project repository. Keys are namespaced by prefix.
func New(s store, prefix string) *Repo {
	return &Repo{table: table.New(s, prefix, "project")}
}

// Save creates or replaces a project. Returns true if created.
func (r *Repo) Save(ctx context.Context, p domproj.Project) (bool, error) {
	created, err := r.table.Put(ctx, p.ID(), toRow(&p))
	if err != nil {
		return false, fmt.Errorf("save project %s: %w", p.ID(), err)
	}
	return created, nil
}

// Delete removes a project by ID.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.table.Delete(ctx, id); err != nil {
		if table.IsNotFound(err) {
			return domain.ErrProjectNotFound
		}
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}

// Get returns a project by ID.
func (r *Repo) Get(ctx context.Context, id string) (domproj.Project, error) {
	var row projectRow
	if err := r.table.Get(ctx, id, &row); err != nil {
		if table.IsNotFound(err) {
			return domproj.Project{}, domain.ErrProjectNotFound
		}
		return domproj.Project{}, fmt.Errorf("get project %s: %w", id, err)
	}
	return fromRow(id, row), nil
}

// List returns every project in creation order.
func (r *Repo) List(ctx context.Context) ([]domproj.Project, error) {
	projects := []domproj.Project{}
	err := table.Each(ctx, r.table, func(id string, row projectRow) error {
		projects = append(projects, fromRow(id, row))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}
