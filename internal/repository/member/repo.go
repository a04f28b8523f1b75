package member

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/labdex/internal/domain"
	dommem "github.com/kailas-cloud/labdex/internal/domain/member"
	"github.com/kailas-cloud/labdex/internal/repository/table"
)

// store is the consumer interface for team members (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LRem(ctx context.Context, key, value string) error
}

type memberRow struct {
	ProjectID  string `json:"projectId,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
	Expertise  string `json:"expertise,omitempty"`
	Department string `json:"department,omitempty"`
}

// Repo stores team members.
type Repo struct {
	table *table.Table
}

// New creates a team member repository.
func New(s store, prefix string) *Repo {
	return &Repo{table: table.New(s, prefix, "member")}
}

// Save creates or replaces a member. Returns true if created.
func (r *Repo) Save(ctx context.Context, m dommem.Member) (bool, error) {
	a := m.Attrs()
	created, err := r.table.Put(ctx, m.ID(), memberRow(a))
	if err != nil {
		return false, fmt.Errorf("save member %s: %w", m.ID(), err)
	}
	return created, nil
}

// Delete removes a member by ID.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.table.Delete(ctx, id); err != nil {
		if table.IsNotFound(err) {
			return domain.ErrMemberNotFound
		}
		return fmt.Errorf("delete member %s: %w", id, err)
	}
	return nil
}

// Get returns a member by ID.
func (r *Repo) Get(ctx context.Context, id string) (dommem.Member, error) {
	var row memberRow
	if err := r.table.Get(ctx, id, &row); err != nil {
		if table.IsNotFound(err) {
			return dommem.Member{}, domain.ErrMemberNotFound
		}
		return dommem.Member{}, fmt.Errorf("get member %s: %w", id, err)
	}
	return dommem.Reconstruct(id, dommem.Attrs(row)), nil
}

// List returns every member in creation order.
func (r *Repo) List(ctx context.Context) ([]dommem.Member, error) {
	return r.list(ctx, "")
}

// ListByProject returns the members attached to one project.
func (r *Repo) ListByProject(ctx context.Context, projectID string) ([]dommem.Member, error) {
	return r.list(ctx, projectID)
}

func (r *Repo) list(ctx context.Context, projectID string) ([]dommem.Member, error) {
	members := []dommem.Member{}
	err := table.Each(ctx, r.table, func(id string, row memberRow) error {
		if projectID == "" || row.ProjectID == projectID {
			members = append(members, dommem.Reconstruct(id, dommem.Attrs(row)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}
