package labdex

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeCompleter struct {
	text string
	err  error
	seen []Prompt
}

func (f *fakeCompleter) Complete(_ context.Context, p Prompt) (Completion, error) {
	f.seen = append(f.seen, p)
	if f.err != nil {
		return Completion{}, f.err
	}
	return Completion{Text: f.text, PromptTokens: 10, CompletionTokens: 5}, nil
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithSQLite(filepath.Join(t.TempDir(), "labdex.db"))}, opts...)
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func seedClient(t *testing.T, c *Client) {
	t.Helper()
	ctx := context.Background()

	created, err := c.UpsertProject(ctx, Project{
		ID:           "p1",
		Title:        "Machine Learning for Soil Health",
		ResearchArea: "Agronomy",
		Status:       "ACTIVE",
		StartDate:    date(2024, 1, 1),
		EndDate:      date(2024, 1, 11),
	})
	if err != nil || !created {
		t.Fatalf("UpsertProject = %v, %v", created, err)
	}
	if _, err := c.UpsertDocument(ctx, Document{
		ID:          "d1",
		ProjectID:   "p1",
		FileName:    "results.pdf",
		FileType:    "pdf",
		Description: "Machine learning model results for nitrogen levels",
		UploadDate:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}
	if _, err := c.UpsertMember(ctx, Member{
		ID:         "m1",
		ProjectID:  "p1",
		Name:       "Ada Byron",
		Email:      "ada@example.org",
		Role:       "Lead",
		Department: "Machine Learning Lab",
	}); err != nil {
		t.Fatalf("UpsertMember: %v", err)
	}
}

func TestNew_RequiresStorage(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error without storage option")
	}
	if _, err := New(WithRedis()); err == nil {
		t.Fatal("expected error for redis without addresses")
	}
}

func TestClient_Search(t *testing.T) {
	c := newTestClient(t)
	seedClient(t, c)
	ctx := context.Background()

	page, err := c.Search(ctx, "machine", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	var types []string
	for _, r := range page.Results {
		types = append(types, r.Type)
	}
	if diff := cmp.Diff([]string{"document", "team-member", "project"}, types); diff != "" {
		t.Errorf("result types (-want +got):\n%s", diff)
	}
	if page.TotalElements != 3 || page.PageSize != defaultPageSize || page.HasNext {
		t.Errorf("unexpected page: %+v", page)
	}

	page, err = c.Search(ctx, "machine", &SearchOptions{Type: "projects", Status: "ACTIVE"})
	if err != nil {
		t.Fatalf("Search projects: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].ID != "p1" {
		t.Errorf("project search = %+v", page.Results)
	}

	page, err = c.Search(ctx, "", nil)
	if err != nil || page.TotalElements != 0 {
		t.Errorf("empty query = %+v, %v", page, err)
	}

	page, err = c.Search(ctx, "machine", &SearchOptions{Page: math.MaxInt64/defaultPageSize + 1})
	if err != nil || len(page.Results) != 0 || page.TotalElements != 3 {
		t.Errorf("huge page = %+v, %v", page, err)
	}

	if _, err := c.Search(ctx, "machine", &SearchOptions{Type: "widgets"}); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestClient_Suggest(t *testing.T) {
	c := newTestClient(t)
	seedClient(t, c)

	got, err := c.Suggest(context.Background(), "res")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if diff := cmp.Diff([]string{"results.pdf"}, got); diff != "" {
		t.Errorf("suggestions (-want +got):\n%s", diff)
	}
}

func TestClient_Ask(t *testing.T) {
	fc := &fakeCompleter{text: " Nitrogen levels were modelled. "}
	c := newTestClient(t, WithCompleter(fc))
	seedClient(t, c)

	a, err := c.Ask(context.Background(), "nitrogen results", "p1")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	want := Answer{Text: "Nitrogen levels were modelled.", Sources: []string{"results.pdf"}}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("answer (-want +got):\n%s", diff)
	}
	if len(fc.seen) != 1 || !strings.Contains(fc.seen[0].User, "From results.pdf:") {
		t.Errorf("prompt = %+v", fc.seen)
	}
}

func TestClient_AskFallback(t *testing.T) {
	tests := []struct {
		name       string
		opts       []Option
		wantReason string
	}{
		{"no completer", nil, "no_provider"},
		{"completer fails", []Option{WithCompleter(&fakeCompleter{err: errors.New("503")})}, "provider_error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, tc.opts...)
			seedClient(t, c)

			a, err := c.Ask(context.Background(), "nitrogen", "p1")
			if err != nil {
				t.Fatalf("Ask: %v", err)
			}
			if !a.Degraded || a.Reason != tc.wantReason {
				t.Errorf("answer = %+v", a)
			}
			if !strings.HasPrefix(a.Text, "I understand you're asking about: nitrogen") {
				t.Errorf("Text = %q", a.Text)
			}
		})
	}
}

func TestClient_Analytics(t *testing.T) {
	now := time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)
	c := newTestClient(t, WithClock(func() time.Time { return now }))
	seedClient(t, c)
	ctx := context.Background()

	a, err := c.CalculateAnalytics(ctx, "p1")
	if err != nil || a == nil {
		t.Fatalf("CalculateAnalytics = %v, %v", a, err)
	}
	if a.DurationDays != 10 || a.ActualDurationDays != 5 || a.CompletionRate != 50 || !a.OnTimeCompletion {
		t.Errorf("analytics = %+v", a)
	}

	missing, err := c.CalculateAnalytics(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("unknown project = %v, %v", missing, err)
	}

	sum, err := c.RecalculateAll(ctx)
	if err != nil {
		t.Fatalf("RecalculateAll: %v", err)
	}
	if sum != (BatchSummary{Calculated: 1}) {
		t.Errorf("summary = %+v", sum)
	}

	hist, err := c.AnalyticsHistory(ctx, "p1")
	if err != nil {
		t.Fatalf("AnalyticsHistory: %v", err)
	}
	if len(hist) != 2 {
		t.Errorf("history length = %d, want 2", len(hist))
	}
}

func TestClient_Ping(t *testing.T) {
	c := newTestClient(t)
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestClient_Delete(t *testing.T) {
	c := newTestClient(t)
	seedClient(t, c)
	ctx := context.Background()

	if err := c.DeleteDocument(ctx, "d1"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if err := c.DeleteMember(ctx, "m1"); err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}

	page, err := c.Search(ctx, "machine", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].Type != "project" {
		t.Errorf("after delete = %+v", page.Results)
	}

	if err := c.DeleteProject(ctx, "p1"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if a, err := c.CalculateAnalytics(ctx, "p1"); err != nil || a != nil {
		t.Errorf("analytics of deleted project = %v, %v", a, err)
	}
	if err := c.DeleteProject(ctx, "p1"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("second DeleteProject = %v, want ErrProjectNotFound", err)
	}
}
