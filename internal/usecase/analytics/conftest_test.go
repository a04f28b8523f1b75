package analytics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/labdex/internal/domain"
	domanalytics "github.com/kailas-cloud/labdex/internal/domain/analytics"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
)

type mockProjects struct {
	projects []domproj.Project
	getErr   error
	listErr  error
}

func (m *mockProjects) Get(_ context.Context, id string) (domproj.Project, error) {
	if m.getErr != nil {
		return domproj.Project{}, m.getErr
	}
	for _, p := range m.projects {
		if p.ID() == id {
			return p, nil
		}
	}
	return domproj.Project{}, domain.ErrProjectNotFound
}

func (m *mockProjects) List(_ context.Context) ([]domproj.Project, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.projects, nil
}

type mockRecords struct {
	mu        sync.Mutex
	appended  []domanalytics.Record
	appendFn  func(rec domanalytics.Record) error
	historyFn func(projectID string) ([]domanalytics.Record, error)
	allFn     func() ([]domanalytics.Record, error)
}

func (m *mockRecords) Append(_ context.Context, rec domanalytics.Record) error {
	if m.appendFn != nil {
		if err := m.appendFn(rec); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appended = append(m.appended, rec)
	return nil
}

func (m *mockRecords) History(_ context.Context, projectID string) ([]domanalytics.Record, error) {
	if m.historyFn != nil {
		return m.historyFn(projectID)
	}
	return nil, nil
}

func (m *mockRecords) All(_ context.Context) ([]domanalytics.Record, error) {
	if m.allFn != nil {
		return m.allFn()
	}
	return nil, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func testProject(t *testing.T, id string, start, end *time.Time) domproj.Project {
	t.Helper()
	p, err := domproj.New(id, domproj.Attrs{Title: "Project " + id, StartDate: start, EndDate: end})
	if err != nil {
		t.Fatalf("build project %s: %v", id, err)
	}
	return p
}
