// Package mcp exposes labdex search, question answering and analytics as
// Model Context Protocol tools over stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	domanalytics "github.com/kailas-cloud/labdex/internal/domain/analytics"
	dombatch "github.com/kailas-cloud/labdex/internal/domain/batch"
	domret "github.com/kailas-cloud/labdex/internal/domain/retrieval"
	"github.com/kailas-cloud/labdex/internal/domain/search/request"
	"github.com/kailas-cloud/labdex/internal/domain/search/response"
	insightuc "github.com/kailas-cloud/labdex/internal/usecase/insight"
	retrievaluc "github.com/kailas-cloud/labdex/internal/usecase/retrieval"
	"github.com/kailas-cloud/labdex/internal/version"
)

// ServerName is the MCP server name.
const ServerName = "labdex"

// SearchService runs searches.
type SearchService interface {
	Universal(ctx context.Context, req request.Request) (response.Response, error)
	Suggestions(ctx context.Context, query string) ([]string, error)
}

// RetrievalService answers project questions.
type RetrievalService interface {
	Ask(ctx context.Context, query, projectID string) (domret.Result, error)
	Insights(ctx context.Context, projectID string) (retrievaluc.Insights, error)
}

// InsightService recommends related projects.
type InsightService interface {
	SimilarProjects(ctx context.Context, projectID string) ([]insightuc.SimilarProject, error)
}

// AnalyticsService calculates project analytics.
type AnalyticsService interface {
	Calculate(ctx context.Context, projectID string) (domanalytics.Record, bool, error)
	RecalculateAll(ctx context.Context) (dombatch.Summary, error)
}

// Server wraps the MCP server with labdex services.
type Server struct {
	mcp             *server.MCPServer
	search          SearchService
	retrieval       RetrievalService
	insight         InsightService
	analytics       AnalyticsService
	defaultPageSize int
	logger          *zap.Logger
}

// NewServer creates a Server with every tool registered.
func NewServer(
	search SearchService,
	retrieval RetrievalService,
	insight InsightService,
	analytics AnalyticsService,
	defaultPageSize int,
	logger *zap.Logger,
) *Server {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	s := &Server{
		mcp:             server.NewMCPServer(ServerName, version.Version),
		search:          search,
		retrieval:       retrieval,
		insight:         insight,
		analytics:       analytics,
		defaultPageSize: defaultPageSize,
		logger:          logger,
	}
	s.registerTools()
	return s
}

// Serve runs the server on stdio until stdin closes.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(universalSearchTool(), s.handleUniversalSearch)
	s.mcp.AddTool(suggestionsTool(), s.handleSuggestions)
	s.mcp.AddTool(askProjectTool(), s.handleAskProject)
	s.mcp.AddTool(projectInsightsTool(), s.handleProjectInsights)
	s.mcp.AddTool(similarProjectsTool(), s.handleSimilarProjects)
	s.mcp.AddTool(calculateAnalyticsTool(), s.handleCalculateAnalytics)
	s.mcp.AddTool(recalculateAllTool(), s.handleRecalculateAll)
}
