package search

import (
	"context"

	domdoc "github.com/kailas-cloud/labdex/internal/domain/document"
	dommem "github.com/kailas-cloud/labdex/internal/domain/member"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
	"github.com/kailas-cloud/labdex/internal/domain/search/filter"
	"github.com/kailas-cloud/labdex/internal/domain/search/kind"
	"github.com/kailas-cloud/labdex/internal/domain/search/result"
)

// EntitySearcher filters one kind of record by lexical containment.
type EntitySearcher interface {
	Kind() kind.Kind
	// Filter returns at most limit matches in source order.
	Filter(ctx context.Context, query string, filters filter.Expression, limit int) ([]result.Result, error)
}

// DocumentReader lists project documents.
type DocumentReader interface {
	List(ctx context.Context) ([]domdoc.Document, error)
}

// MemberReader lists team members.
type MemberReader interface {
	List(ctx context.Context) ([]dommem.Member, error)
}

// ProjectReader lists research projects.
type ProjectReader interface {
	List(ctx context.Context) ([]domproj.Project, error)
}
