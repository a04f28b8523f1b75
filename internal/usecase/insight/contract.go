package insight

import (
	"context"

	domdoc "github.com/kailas-cloud/labdex/internal/domain/document"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
)

// DocumentReader reads single documents.
type DocumentReader interface {
	Get(ctx context.Context, id string) (domdoc.Document, error)
}

// ProjectReader reads projects.
type ProjectReader interface {
	Get(ctx context.Context, id string) (domproj.Project, error)
	List(ctx context.Context) ([]domproj.Project, error)
}
