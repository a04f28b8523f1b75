package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	domanalytics "github.com/kailas-cloud/labdex/internal/domain/analytics"
	dombatch "github.com/kailas-cloud/labdex/internal/domain/batch"
	domret "github.com/kailas-cloud/labdex/internal/domain/retrieval"
	"github.com/kailas-cloud/labdex/internal/domain/search/kind"
	"github.com/kailas-cloud/labdex/internal/domain/search/request"
	"github.com/kailas-cloud/labdex/internal/domain/search/response"
	domusage "github.com/kailas-cloud/labdex/internal/domain/usage"
	healthuc "github.com/kailas-cloud/labdex/internal/usecase/health"
	insightuc "github.com/kailas-cloud/labdex/internal/usecase/insight"
	retrievaluc "github.com/kailas-cloud/labdex/internal/usecase/retrieval"
)

type mockSearch struct {
	universalFn   func(ctx context.Context, req request.Request) (response.Response, error)
	byKindFn      func(ctx context.Context, k kind.Kind, req request.Request) (response.Response, error)
	suggestionsFn func(ctx context.Context, query string) ([]string, error)
}

func (m *mockSearch) Universal(ctx context.Context, req request.Request) (response.Response, error) {
	return m.universalFn(ctx, req)
}

func (m *mockSearch) ByKind(ctx context.Context, k kind.Kind, req request.Request) (response.Response, error) {
	return m.byKindFn(ctx, k, req)
}

func (m *mockSearch) Suggestions(ctx context.Context, query string) ([]string, error) {
	return m.suggestionsFn(ctx, query)
}

type mockRetrieval struct {
	askFn      func(ctx context.Context, query, projectID string) (domret.Result, error)
	processFn  func(ctx context.Context, documentID string) (bool, error)
	insightsFn func(ctx context.Context, projectID string) (retrievaluc.Insights, error)
}

func (m *mockRetrieval) Ask(ctx context.Context, query, projectID string) (domret.Result, error) {
	return m.askFn(ctx, query, projectID)
}

func (m *mockRetrieval) ProcessDocument(ctx context.Context, documentID string) (bool, error) {
	return m.processFn(ctx, documentID)
}

func (m *mockRetrieval) Insights(ctx context.Context, projectID string) (retrievaluc.Insights, error) {
	return m.insightsFn(ctx, projectID)
}

type mockInsight struct {
	analyzeFn func(ctx context.Context, documentID string) (insightuc.DocumentAnalysis, error)
	similarFn func(ctx context.Context, projectID string) ([]insightuc.SimilarProject, error)
}

func (m *mockInsight) AnalyzeDocument(ctx context.Context, documentID string) (insightuc.DocumentAnalysis, error) {
	return m.analyzeFn(ctx, documentID)
}

func (m *mockInsight) SimilarProjects(ctx context.Context, projectID string) ([]insightuc.SimilarProject, error) {
	return m.similarFn(ctx, projectID)
}

type mockAnalytics struct {
	calculateFn func(ctx context.Context, projectID string) (domanalytics.Record, bool, error)
	allFn       func(ctx context.Context) (dombatch.Summary, error)
	historyFn   func(ctx context.Context, projectID string) ([]domanalytics.Record, error)
	listFn      func(ctx context.Context) ([]domanalytics.Record, error)
}

func (m *mockAnalytics) Calculate(ctx context.Context, projectID string) (domanalytics.Record, bool, error) {
	return m.calculateFn(ctx, projectID)
}

func (m *mockAnalytics) RecalculateAll(ctx context.Context) (dombatch.Summary, error) {
	return m.allFn(ctx)
}

func (m *mockAnalytics) History(ctx context.Context, projectID string) ([]domanalytics.Record, error) {
	return m.historyFn(ctx, projectID)
}

func (m *mockAnalytics) All(ctx context.Context) ([]domanalytics.Record, error) {
	return m.listFn(ctx)
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

type mockUsage struct {
	reportFn func(ctx context.Context, period domusage.Period) domusage.Report
}

func (m *mockUsage) GetReport(ctx context.Context, period domusage.Period) domusage.Report {
	return m.reportFn(ctx, period)
}

type fixture struct {
	search    *mockSearch
	retrieval *mockRetrieval
	insight   *mockInsight
	analytics *mockAnalytics
	health    *mockHealth
	usage     *mockUsage
}

func newFixture() *fixture {
	return &fixture{
		search:    &mockSearch{},
		retrieval: &mockRetrieval{},
		insight:   &mockInsight{},
		analytics: &mockAnalytics{},
		health:    &mockHealth{report: healthuc.Report{Status: healthuc.Healthy}},
		usage:     &mockUsage{},
	}
}

func (f *fixture) router() http.Handler {
	s := NewServer(f.search, f.retrieval, f.insight, f.analytics, f.health, f.usage, zap.NewNop()).
		WithDefaultPageSize(10)
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	f.router().ServeHTTP(rr, req)
	return rr
}
