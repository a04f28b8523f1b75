package labdex

import (
	"context"
	"time"
)

// Prompt is a single-turn request to a language model.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Completion is a model reply with optional token usage.
type Completion struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Completer generates answers. Implement it to plug in any model.
type Completer interface {
	Complete(ctx context.Context, p Prompt) (Completion, error)
}

// Project is a research project.
type Project struct {
	ID           string
	Title        string
	Description  string
	Keywords     string
	ResearchArea string
	Status       string
	StartDate    *time.Time
	EndDate      *time.Time
}

// Document is a file uploaded to a project; only its description is searched.
type Document struct {
	ID          string
	ProjectID   string
	FileName    string
	FileType    string
	FilePath    string
	Description string
	UploadedBy  string
	UploadDate  time.Time
}

// Member is a researcher on a project.
type Member struct {
	ID         string
	ProjectID  string
	Name       string
	Email      string
	Role       string
	Expertise  string
	Department string
}

// SearchOptions narrows a search. The zero value searches every type,
// first page, 20 per page.
type SearchOptions struct {
	// Type is "documents", "team-members", "projects" or empty for all.
	Type       string
	Page       int
	Size       int
	Department string
	Status     string
}

// SearchResult is one ranked match.
type SearchResult struct {
	ID          string
	Type        string
	Title       string
	Description string
	Score       float64
	URL         string
	Highlight   string
	Metadata    map[string]string
}

// SearchPage is one page of results.
type SearchPage struct {
	Results       []SearchResult
	TotalElements int
	TotalPages    int
	CurrentPage   int
	PageSize      int
	HasNext       bool
	HasPrevious   bool
}

// Answer is the reply to a project question.
type Answer struct {
	Text    string
	Sources []string
	// Degraded is set when the fallback text was returned instead of a model answer.
	Degraded bool
	Reason   string
}

// Analytics is a project timeline snapshot.
type Analytics struct {
	ID                 string
	ProjectID          string
	ProjectTitle       string
	StartDate          time.Time
	EndDate            time.Time
	ActualEndDate      time.Time
	DurationDays       int
	ActualDurationDays int
	CompletionRate     float64
	OnTimeCompletion   bool
	CalculatedDate     time.Time
}

// BatchSummary counts the outcomes of RecalculateAll.
type BatchSummary struct {
	Calculated int
	Failed     int
	Skipped    int
}
