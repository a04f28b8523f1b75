package analytics

import (
	"context"

	domanalytics "github.com/kailas-cloud/labdex/internal/domain/analytics"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
)

// ProjectReader reads the projects to calculate.
type ProjectReader interface {
	Get(ctx context.Context, id string) (domproj.Project, error)
	List(ctx context.Context) ([]domproj.Project, error)
}

// RecordStore is the append-only analytics history.
type RecordStore interface {
	Append(ctx context.Context, rec domanalytics.Record) error
	History(ctx context.Context, projectID string) ([]domanalytics.Record, error)
	All(ctx context.Context) ([]domanalytics.Record, error)
}
