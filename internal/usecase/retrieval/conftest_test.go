package retrieval

import (
	"context"
	"time"

	"github.com/kailas-cloud/labdex/internal/domain"
	domdoc "github.com/kailas-cloud/labdex/internal/domain/document"
	dommem "github.com/kailas-cloud/labdex/internal/domain/member"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
)

type mockDocs struct {
	byProject map[string][]domdoc.Document
	err       error
}

func (m *mockDocs) ListByProject(_ context.Context, projectID string) ([]domdoc.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byProject[projectID], nil
}

type mockProcessor struct {
	getFn           func(ctx context.Context, id string) (domdoc.Document, error)
	markProcessedFn func(ctx context.Context, id string) error
	marked          []string
}

func (m *mockProcessor) Get(ctx context.Context, id string) (domdoc.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domdoc.Reconstruct(id, domdoc.Attrs{FileName: id + ".pdf"}), nil
}

func (m *mockProcessor) MarkProcessed(ctx context.Context, id string) error {
	if m.markProcessedFn != nil {
		return m.markProcessedFn(ctx, id)
	}
	m.marked = append(m.marked, id)
	return nil
}

type mockProjects struct {
	projects map[string]domproj.Project
}

func (m *mockProjects) Get(_ context.Context, id string) (domproj.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return domproj.Project{}, domain.ErrProjectNotFound
	}
	return p, nil
}

type mockMembers struct {
	byProject map[string][]dommem.Member
}

func (m *mockMembers) ListByProject(_ context.Context, projectID string) ([]dommem.Member, error) {
	return m.byProject[projectID], nil
}

type mockCompleter struct {
	completeFn func(ctx context.Context, p domain.Prompt) (domain.Completion, error)
	calls      int
}

func (m *mockCompleter) Complete(ctx context.Context, p domain.Prompt) (domain.Completion, error) {
	m.calls++
	if m.completeFn != nil {
		return m.completeFn(ctx, p)
	}
	return domain.Completion{Text: "answer"}, nil
}

func testDoc(id, projectID, desc string) domdoc.Document {
	return domdoc.Reconstruct(id, domdoc.Attrs{
		ProjectID: projectID, FileName: id + ".pdf", FileType: "pdf", Description: desc,
		UploadDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}
