package retrieval

import (
	"context"

	domdoc "github.com/kailas-cloud/labdex/internal/domain/document"
	dommem "github.com/kailas-cloud/labdex/internal/domain/member"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
)

// ProjectDocumentReader lists the documents of one project.
type ProjectDocumentReader interface {
	ListByProject(ctx context.Context, projectID string) ([]domdoc.Document, error)
}

// DocumentProcessor marks a document as processed for retrieval.
type DocumentProcessor interface {
	Get(ctx context.Context, id string) (domdoc.Document, error)
	MarkProcessed(ctx context.Context, id string) error
}

// ProjectReader reads projects.
type ProjectReader interface {
	Get(ctx context.Context, id string) (domproj.Project, error)
}

// ProjectMemberReader lists the members of one project.
type ProjectMemberReader interface {
	ListByProject(ctx context.Context, projectID string) ([]dommem.Member, error)
}
