package mcp

import "github.com/mark3labs/mcp-go/mcp"

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func projectIDSchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"project_id": stringProp("Research project ID"),
		},
		Required: []string{"project_id"},
	}
}

func universalSearchTool() mcp.Tool {
	return mcp.Tool{
		Name:        "universal_search",
		Description: "Search documents, team members and research projects by keyword",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": stringProp("Search text, matched case-insensitively"),
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Restrict to one record type",
					"enum":        []string{"all", "documents", "team-members", "projects"},
					"default":     "all",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Zero-based page index",
					"default":     0,
					"minimum":     0,
				},
				"size": map[string]interface{}{
					"type":        "integer",
					"description": "Page size",
					"minimum":     1,
				},
				"department": stringProp("Only team members of this department"),
				"status":     stringProp("Only records with this status"),
			},
			Required: []string{"query"},
		},
	}
}

func suggestionsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_suggestions",
		Description: "Autocomplete document names and team member names for a prefix",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": stringProp("Partial text typed so far"),
			},
			Required: []string{"query"},
		},
	}
}

func askProjectTool() mcp.Tool {
	return mcp.Tool{
		Name:        "ask_project",
		Description: "Answer a question from the documents of a research project",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query":      stringProp("Question in natural language"),
				"project_id": stringProp("Research project ID"),
			},
			Required: []string{"query", "project_id"},
		},
	}
}

func projectInsightsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "project_insights",
		Description: "Summarize a project's documents, recent uploads, key topics and team size",
		InputSchema: projectIDSchema(),
	}
}

func similarProjectsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "similar_projects",
		Description: "List projects in the same research area ranked by keyword overlap",
		InputSchema: projectIDSchema(),
	}
}

func calculateAnalyticsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "calculate_project_analytics",
		Description: "Compute and store a timeline analytics snapshot for a project",
		InputSchema: projectIDSchema(),
	}
}

func recalculateAllTool() mcp.Tool {
	return mcp.Tool{
		Name:        "recalculate_all_analytics",
		Description: "Compute analytics snapshots for every project",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}},
	}
}
