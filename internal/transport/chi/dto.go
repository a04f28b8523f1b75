package chi

import (
	"time"

	"github.com/oapi-codegen/runtime/types"

	domanalytics "github.com/kailas-cloud/labdex/internal/domain/analytics"
	domret "github.com/kailas-cloud/labdex/internal/domain/retrieval"
	"github.com/kailas-cloud/labdex/internal/domain/search/response"
	domusage "github.com/kailas-cloud/labdex/internal/domain/usage"
	insightuc "github.com/kailas-cloud/labdex/internal/usecase/insight"
	retrievaluc "github.com/kailas-cloud/labdex/internal/usecase/retrieval"
)

// SearchRequest is the JSON body of the POST search endpoints.
type SearchRequest struct {
	Query      string `json:"query"`
	Page       *int   `json:"page,omitempty"`
	Size       *int   `json:"size,omitempty"`
	Type       string `json:"type,omitempty"`
	Department string `json:"department,omitempty"`
	Status     string `json:"status,omitempty"`
}

// SearchResult is one ranked match.
type SearchResult struct {
	ID             string            `json:"id"`
	Type           string            `json:"type"`
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	ContentPreview string            `json:"contentPreview,omitempty"`
	Score          float64           `json:"score"`
	URL            string            `json:"url"`
	Highlight      string            `json:"highlight,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// FacetValue is one facet bucket.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facet groups result counts by attribute.
type Facet struct {
	Name   string       `json:"name"`
	Values []FacetValue `json:"values"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Results       []SearchResult `json:"results"`
	TotalElements int            `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	CurrentPage   int            `json:"currentPage"`
	PageSize      int            `json:"pageSize"`
	HasNext       bool           `json:"hasNext"`
	HasPrevious   bool           `json:"hasPrevious"`
	SearchTimeMs  int64          `json:"searchTimeMs"`
	Facets        []Facet        `json:"facets"`
}

// AskResponse is the answer to a project question.
type AskResponse struct {
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources"`
	Query    string   `json:"query"`
	Degraded bool     `json:"degraded"`
	Reason   string   `json:"reason,omitempty"`
}

// ProcessResponse reports whether a document was processed.
type ProcessResponse struct {
	Processed bool `json:"processed"`
}

// Activity is a recent upload in InsightsResponse.
type Activity struct {
	DocumentID string    `json:"documentId"`
	FileName   string    `json:"fileName"`
	UploadDate time.Time `json:"uploadDate"`
	UploadedBy string    `json:"uploadedBy,omitempty"`
}

// InsightsResponse summarizes a project.
type InsightsResponse struct {
	ProjectID      string         `json:"projectId"`
	ProjectTitle   string         `json:"projectTitle"`
	Status         string         `json:"status"`
	Description    string         `json:"description"`
	TotalDocuments int            `json:"totalDocuments"`
	DocumentTypes  map[string]int `json:"documentTypes"`
	RecentActivity []Activity     `json:"recentActivity"`
	KeyTopics      []string       `json:"keyTopics"`
	TeamSize       int            `json:"teamSize"`
}

// AnalysisResponse is the lexical profile of a document.
type AnalysisResponse struct {
	DocumentID       string   `json:"documentId"`
	FileName         string   `json:"fileName"`
	FileType         string   `json:"fileType"`
	Summary          string   `json:"summary"`
	Keywords         []string `json:"keywords"`
	Sentiment        string   `json:"sentiment"`
	ReadabilityScore float64  `json:"readabilityScore"`
}

// SimilarProjectResponse is one recommended project.
type SimilarProjectResponse struct {
	ProjectID      string   `json:"projectId"`
	Title          string   `json:"title"`
	ResearchArea   string   `json:"researchArea"`
	Status         string   `json:"status"`
	Similarity     float64  `json:"similarity"`
	CommonKeywords []string `json:"commonKeywords"`
}

// AnalyticsResponse is one analytics snapshot.
type AnalyticsResponse struct {
	ID                 string     `json:"id"`
	ProjectID          string     `json:"projectId"`
	ProjectTitle       string     `json:"projectTitle"`
	StartDate          types.Date `json:"startDate"`
	EndDate            types.Date `json:"endDate"`
	ActualEndDate      types.Date `json:"actualEndDate"`
	DurationDays       int        `json:"durationDays"`
	ActualDurationDays int        `json:"actualDurationDays"`
	CompletionRate     float64    `json:"completionRate"`
	OnTimeCompletion   bool       `json:"onTimeCompletion"`
	CalculatedDate     types.Date `json:"calculatedDate"`
}

// UsageResponse is the token usage of one budget window.
type UsageResponse struct {
	Period          string    `json:"period"`
	PeriodStart     time.Time `json:"periodStart"`
	PeriodEnd       time.Time `json:"periodEnd"`
	Provider        string    `json:"provider"`
	TokensUsed      int64     `json:"tokensUsed"`
	TokensLimit     int64     `json:"tokensLimit"`
	TokensRemaining int64     `json:"tokensRemaining"`
	Exhausted       bool      `json:"exhausted"`
}

// HealthResponse is the health report.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func toSearchResponse(r response.Response) SearchResponse {
	results := r.Results()
	out := SearchResponse{
		Results:       make([]SearchResult, len(results)),
		TotalElements: r.TotalElements(),
		TotalPages:    r.TotalPages(),
		CurrentPage:   r.CurrentPage(),
		PageSize:      r.PageSize(),
		HasNext:       r.HasNext(),
		HasPrevious:   r.HasPrevious(),
		SearchTimeMs:  r.SearchTimeMs(),
		Facets:        make([]Facet, 0, len(r.Facets())),
	}
	for i := range results {
		res := &results[i]
		out.Results[i] = SearchResult{
			ID:             res.ID(),
			Type:           string(res.Kind()),
			Title:          res.Title(),
			Description:    res.Description(),
			ContentPreview: res.ContentPreview(),
			Score:          res.Score(),
			URL:            res.URL(),
			Highlight:      res.Highlight(),
			Metadata:       res.Metadata(),
		}
	}
	for _, f := range r.Facets() {
		values := make([]FacetValue, len(f.Values))
		for j, v := range f.Values {
			values[j] = FacetValue{Value: v.Value, Count: v.Count}
		}
		out.Facets = append(out.Facets, Facet{Name: f.Name, Values: values})
	}
	return out
}

func toAskResponse(r domret.Result) AskResponse {
	return AskResponse{
		Answer:   r.Answer.Text,
		Sources:  r.SourceNames(),
		Query:    r.Query,
		Degraded: r.Answer.Degraded,
		Reason:   r.Answer.Reason,
	}
}

func toInsightsResponse(in retrievaluc.Insights) InsightsResponse {
	activity := make([]Activity, len(in.RecentActivity))
	for i, a := range in.RecentActivity {
		activity[i] = Activity{
			DocumentID: a.DocumentID,
			FileName:   a.FileName,
			UploadDate: a.UploadDate,
			UploadedBy: a.UploadedBy,
		}
	}
	return InsightsResponse{
		ProjectID:      in.ProjectID,
		ProjectTitle:   in.ProjectTitle,
		Status:         string(in.Status),
		Description:    in.Description,
		TotalDocuments: in.TotalDocuments,
		DocumentTypes:  in.DocumentTypes,
		RecentActivity: activity,
		KeyTopics:      nonNil(in.KeyTopics),
		TeamSize:       in.TeamSize,
	}
}

func toAnalysisResponse(a insightuc.DocumentAnalysis) AnalysisResponse {
	return AnalysisResponse{
		DocumentID:       a.DocumentID,
		FileName:         a.FileName,
		FileType:         a.FileType,
		Summary:          a.Summary,
		Keywords:         nonNil(a.Keywords),
		Sentiment:        string(a.Sentiment),
		ReadabilityScore: a.Readability,
	}
}

func toSimilarResponse(similar []insightuc.SimilarProject) []SimilarProjectResponse {
	out := make([]SimilarProjectResponse, len(similar))
	for i := range similar {
		p := &similar[i].Project
		out[i] = SimilarProjectResponse{
			ProjectID:      p.ID(),
			Title:          p.Title(),
			ResearchArea:   p.ResearchArea(),
			Status:         string(p.Status()),
			Similarity:     similar[i].Similarity,
			CommonKeywords: nonNil(similar[i].CommonKeywords),
		}
	}
	return out
}

func toAnalyticsResponse(r domanalytics.Record) AnalyticsResponse {
	return AnalyticsResponse{
		ID:                 r.ID(),
		ProjectID:          r.ProjectID(),
		ProjectTitle:       r.ProjectTitle(),
		StartDate:          types.Date{Time: r.StartDate()},
		EndDate:            types.Date{Time: r.EndDate()},
		ActualEndDate:      types.Date{Time: r.ActualEndDate()},
		DurationDays:       r.DurationDays(),
		ActualDurationDays: r.ActualDurationDays(),
		CompletionRate:     r.CompletionRate(),
		OnTimeCompletion:   r.OnTimeCompletion(),
		CalculatedDate:     types.Date{Time: r.CalculatedDate()},
	}
}

func toAnalyticsList(records []domanalytics.Record) []AnalyticsResponse {
	out := make([]AnalyticsResponse, len(records))
	for i := range records {
		out[i] = toAnalyticsResponse(records[i])
	}
	return out
}

func toUsageResponse(r domusage.Report) UsageResponse {
	return UsageResponse{
		Period:          string(r.Period()),
		PeriodStart:     r.PeriodStart(),
		PeriodEnd:       r.PeriodEnd(),
		Provider:        r.Provider(),
		TokensUsed:      r.TokensUsed(),
		TokensLimit:     r.TokensLimit(),
		TokensRemaining: r.TokensRemaining(),
		Exhausted:       r.Exhausted(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
