package result

import "github.com/kailas-cloud/labdex/internal/domain/search/kind"

// Result is a single search hit. Results are ephemeral and never persisted.
type Result struct {
	id             string
	kind           kind.Kind
	title          string
	description    string
	contentPreview string
	score          float64
	url            string
	highlight      string
	metadata       map[string]string
}

// Fields carries the presentation values of a Result.
type Fields struct {
	Title          string
	Description    string
	ContentPreview string
	URL            string
	Highlight      string
	Metadata       map[string]string
}

// New creates a search result. Score is clamped to [0, 1].
func New(id string, k kind.Kind, score float64, f Fields) Result {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return Result{
		id: id, kind: k, score: score,
		title: f.Title, description: f.Description, contentPreview: f.ContentPreview,
		url: f.URL, highlight: f.Highlight, metadata: f.Metadata,
	}
}

// ID returns the record identifier.
func (r *Result) ID() string { return r.id }

// Kind returns the record kind.
func (r *Result) Kind() kind.Kind { return r.kind }

// Title returns the display title.
func (r *Result) Title() string { return r.title }

// Description returns the display description.
func (r *Result) Description() string { return r.description }

// ContentPreview returns a short preview line.
func (r *Result) ContentPreview() string { return r.contentPreview }

// Score returns the relevance score in [0, 1].
func (r *Result) Score() float64 { return r.score }

// URL returns the relative URL of the record.
func (r *Result) URL() string { return r.url }

// Highlight returns the snippet around the match.
func (r *Result) Highlight() string { return r.highlight }

// Metadata returns the string attributes of the record.
func (r *Result) Metadata() map[string]string { return r.metadata }
