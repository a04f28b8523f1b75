package search

import (
	"context"
	"fmt"

	domdoc "github.com/kailas-cloud/labdex/internal/domain/document"
	"github.com/kailas-cloud/labdex/internal/domain/lexical"
	dommem "github.com/kailas-cloud/labdex/internal/domain/member"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
	"github.com/kailas-cloud/labdex/internal/domain/search/filter"
	"github.com/kailas-cloud/labdex/internal/domain/search/kind"
	"github.com/kailas-cloud/labdex/internal/domain/search/result"
)

// candidate is a record flattened for matching.
type candidate struct {
	id string
	// searchable fields, in the order the highlight is chosen from
	fields []string
	view   result.Fields
}

// searcher is the EntitySearcher shared by every kind; only loading and
// field extraction differ.
type searcher struct {
	kind  kind.Kind
	load  func(ctx context.Context) ([]candidate, error)
	score float64
}

// Kind returns the record kind this searcher covers.
func (s *searcher) Kind() kind.Kind { return s.kind }

// Filter keeps records where the whole query is a case-insensitive substring
// of any single searchable field. Every survivor gets the fixed visible score:
// containment is a boolean test, so no per-record relevance exists here (unlike
// retrieval, which scores by term coverage). The first limit matches are kept.
func (s *searcher) Filter(
	ctx context.Context, query string, filters filter.Expression, limit int,
) ([]result.Result, error) {
	candidates, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s records: %w", s.kind, err)
	}

	var out []result.Result
	for _, c := range candidates {
		if len(out) >= limit {
			break
		}
		if !filters.Matches(c.view.Metadata) {
			continue
		}
		i, ok := lexical.MatchingField(query, c.fields...)
		if !ok {
			continue
		}
		view := c.view
		view.Highlight = lexical.Snippet(c.fields[i], query)
		out = append(out, result.New(c.id, s.kind, s.score, view))
	}
	return out, nil
}

// NewDocumentSearcher matches documents on file name and description.
func NewDocumentSearcher(docs DocumentReader, score float64) EntitySearcher {
	return &searcher{kind: kind.Document, score: score, load: func(ctx context.Context) ([]candidate, error) {
		list, err := docs.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]candidate, len(list))
		for i := range list {
			out[i] = documentCandidate(&list[i])
		}
		return out, nil
	}}
}

// NewMemberSearcher matches team members on name, email and department.
func NewMemberSearcher(members MemberReader, score float64) EntitySearcher {
	return &searcher{kind: kind.TeamMember, score: score, load: func(ctx context.Context) ([]candidate, error) {
		list, err := members.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]candidate, len(list))
		for i := range list {
			out[i] = memberCandidate(&list[i])
		}
		return out, nil
	}}
}

// NewProjectSearcher matches projects on title, description, keywords and research area.
func NewProjectSearcher(projects ProjectReader, score float64) EntitySearcher {
	return &searcher{kind: kind.Project, score: score, load: func(ctx context.Context) ([]candidate, error) {
		list, err := projects.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]candidate, len(list))
		for i := range list {
			out[i] = projectCandidate(&list[i])
		}
		return out, nil
	}}
}

func documentCandidate(d *domdoc.Document) candidate {
	return candidate{
		id:     d.ID(),
		fields: []string{d.FileName(), d.Description()},
		view: result.Fields{
			Title:          d.FileName(),
			Description:    d.Description(),
			ContentPreview: d.FileName() + " - " + d.FileType(),
			URL:            "/documents/" + d.ID(),
			Metadata: compact(map[string]string{
				"projectId":      d.ProjectID(),
				"fileType":       d.FileType(),
				"uploadedBy":     d.UploadedBy(),
				filter.KeyStatus: string(d.Status()),
			}),
		},
	}
}

func memberCandidate(m *dommem.Member) candidate {
	return candidate{
		id:     m.ID(),
		fields: []string{m.Name(), m.Email(), m.Department()},
		view: result.Fields{
			Title:          m.Name(),
			Description:    m.Role() + " - " + m.Department(),
			ContentPreview: m.Email() + " - " + m.Expertise(),
			URL:            "/team-members/" + m.ID(),
			Metadata: compact(map[string]string{
				"projectId":          m.ProjectID(),
				"email":              m.Email(),
				"role":               m.Role(),
				filter.KeyDepartment: m.Department(),
			}),
		},
	}
}

func projectCandidate(p *domproj.Project) candidate {
	return candidate{
		id:     p.ID(),
		fields: []string{p.Title(), p.Description(), p.Keywords(), p.ResearchArea()},
		view: result.Fields{
			Title:          p.Title(),
			Description:    p.Description(),
			ContentPreview: string(p.Status()) + " - " + p.ResearchArea(),
			URL:            "/projects/" + p.ID(),
			Metadata: compact(map[string]string{
				"researchArea":   p.ResearchArea(),
				filter.KeyStatus: string(p.Status()),
			}),
		},
	}
}

// compact drops empty attributes so filters treat them as absent.
func compact(m map[string]string) map[string]string {
	for k, v := range m {
		if v == "" {
			delete(m, k)
		}
	}
	return m
}
