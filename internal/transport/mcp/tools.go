package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/domain"
	"github.com/kailas-cloud/labdex/internal/domain/search/filter"
	"github.com/kailas-cloud/labdex/internal/domain/search/kind"
	"github.com/kailas-cloud/labdex/internal/domain/search/request"
)

func (s *Server) handleUniversalSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(req)

	scope, err := kind.Parse(getString(args, "type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filters, err := filter.FromParams(getString(args, "department", ""), getString(args, "status", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sr, err := request.New(
		getString(args, "query", ""),
		getInt(args, "page", 0),
		getInt(args, "size", s.defaultPageSize),
		scope, filters,
	)
	if err != nil {
		return s.toolError("universal_search", err), nil
	}

	resp, err := s.search.Universal(ctx, sr)
	if err != nil {
		return s.toolError("universal_search", err), nil
	}

	results := resp.Results()
	hits := make([]map[string]interface{}, len(results))
	for i := range results {
		r := &results[i]
		hits[i] = map[string]interface{}{
			"id":        r.ID(),
			"type":      string(r.Kind()),
			"title":     r.Title(),
			"score":     r.Score(),
			"url":       r.URL(),
			"highlight": r.Highlight(),
		}
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"results":        hits,
		"total_elements": resp.TotalElements(),
		"total_pages":    resp.TotalPages(),
		"current_page":   resp.CurrentPage(),
		"has_next":       resp.HasNext(),
	})), nil
}

func (s *Server) handleSuggestions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := s.search.Suggestions(ctx, getString(arguments(req), "query", ""))
	if err != nil {
		return s.toolError("search_suggestions", err), nil
	}
	if out == nil {
		out = []string{}
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{"suggestions": out})), nil
}

func (s *Server) handleAskProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(req)
	query := strings.TrimSpace(getString(args, "query", ""))
	projectID := strings.TrimSpace(getString(args, "project_id", ""))
	if query == "" || projectID == "" {
		return mcp.NewToolResultError("query and project_id are required"), nil
	}

	res, err := s.retrieval.Ask(ctx, query, projectID)
	if err != nil {
		return s.toolError("ask_project", err), nil
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"answer":   res.Answer.Text,
		"sources":  res.SourceNames(),
		"degraded": res.Answer.Degraded,
	})), nil
}

func (s *Server) handleProjectInsights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, bad := requireProjectID(req)
	if bad != nil {
		return bad, nil
	}
	in, err := s.retrieval.Insights(ctx, projectID)
	if err != nil {
		return s.toolError("project_insights", err), nil
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"project_id":      in.ProjectID,
		"project_title":   in.ProjectTitle,
		"status":          string(in.Status),
		"total_documents": in.TotalDocuments,
		"document_types":  in.DocumentTypes,
		"key_topics":      in.KeyTopics,
		"team_size":       in.TeamSize,
	})), nil
}

func (s *Server) handleSimilarProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, bad := requireProjectID(req)
	if bad != nil {
		return bad, nil
	}
	similar, err := s.insight.SimilarProjects(ctx, projectID)
	if err != nil {
		return s.toolError("similar_projects", err), nil
	}
	out := make([]map[string]interface{}, len(similar))
	for i := range similar {
		p := &similar[i].Project
		out[i] = map[string]interface{}{
			"project_id":      p.ID(),
			"title":           p.Title(),
			"similarity":      similar[i].Similarity,
			"common_keywords": similar[i].CommonKeywords,
		}
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{"projects": out})), nil
}

func (s *Server) handleCalculateAnalytics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, bad := requireProjectID(req)
	if bad != nil {
		return bad, nil
	}
	rec, ok, err := s.analytics.Calculate(ctx, projectID)
	if err != nil {
		return s.toolError("calculate_project_analytics", err), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("project %s not found", projectID)), nil
	}
	const day = "2006-01-02"
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"project_id":           rec.ProjectID(),
		"start_date":           rec.StartDate().Format(day),
		"end_date":             rec.EndDate().Format(day),
		"actual_end_date":      rec.ActualEndDate().Format(day),
		"duration_days":        rec.DurationDays(),
		"actual_duration_days": rec.ActualDurationDays(),
		"completion_rate":      rec.CompletionRate(),
		"on_time_completion":   rec.OnTimeCompletion(),
	})), nil
}

func (s *Server) handleRecalculateAll(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := s.analytics.RecalculateAll(ctx)
	if err != nil {
		return s.toolError("recalculate_all_analytics", err), nil
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"calculated": summary.Calculated,
		"failed":     summary.Failed,
		"skipped":    summary.Skipped,
	})), nil
}

// toolError reports domain errors to the client verbatim and hides the rest.
func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	for _, sentinel := range []error{
		domain.ErrProjectNotFound,
		domain.ErrDocumentNotFound,
		domain.ErrInvalidPageSize,
		domain.ErrInvalidInput,
	} {
		if errors.Is(err, sentinel) {
			return mcp.NewToolResultError(err.Error())
		}
	}
	s.logger.Error("tool failed", zap.String("tool", tool), zap.Error(err))
	return mcp.NewToolResultError("internal error")
}

func requireProjectID(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	id := strings.TrimSpace(getString(arguments(req), "project_id", ""))
	if id == "" {
		return "", mcp.NewToolResultError("project_id is required")
	}
	return id, nil
}

func arguments(req mcp.CallToolRequest) map[string]interface{} {
	if args, ok := req.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

func formatJSON(data map[string]interface{}) string {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(b)
}

func getInt(args map[string]interface{}, key string, defaultValue int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return defaultValue
}

func getString(args map[string]interface{}, key, defaultValue string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return defaultValue
}
