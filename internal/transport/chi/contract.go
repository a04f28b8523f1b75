package chi

import (
	"context"

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

// SearchService runs universal and per-kind searches.
type SearchService interface {
	Universal(ctx context.Context, req request.Request) (response.Response, error)
	ByKind(ctx context.Context, k kind.Kind, req request.Request) (response.Response, error)
	Suggestions(ctx context.Context, query string) ([]string, error)
}

// RetrievalService answers project questions and summarizes projects.
type RetrievalService interface {
	Ask(ctx context.Context, query, projectID string) (domret.Result, error)
	ProcessDocument(ctx context.Context, documentID string) (bool, error)
	Insights(ctx context.Context, projectID string) (retrievaluc.Insights, error)
}

// InsightService analyzes documents and recommends related projects.
type InsightService interface {
	AnalyzeDocument(ctx context.Context, documentID string) (insightuc.DocumentAnalysis, error)
	SimilarProjects(ctx context.Context, projectID string) ([]insightuc.SimilarProject, error)
}

// AnalyticsService calculates and lists project analytics.
type AnalyticsService interface {
	Calculate(ctx context.Context, projectID string) (domanalytics.Record, bool, error)
	RecalculateAll(ctx context.Context) (dombatch.Summary, error)
	History(ctx context.Context, projectID string) ([]domanalytics.Record, error)
	All(ctx context.Context) ([]domanalytics.Record, error)
}

// HealthService reports component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// UsageService reports language model token usage.
type UsageService interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}
