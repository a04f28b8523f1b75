package retrieval

// Excerpt is a document fragment selected as answer context.
type Excerpt struct {
	// Content is the full text the relevance was computed over.
	Content    string
	SourceID   string
	SourceName string
	// Relevance is the fraction of distinct query terms present in Content.
	Relevance float64
	Snippet   string
}

// Reasons an answer was degraded to the canned fallback.
const (
	ReasonNoProvider    = "no_provider"
	ReasonProviderError = "provider_error"
	ReasonTimeout       = "timeout"
	ReasonEmpty         = "empty_response"
	ReasonQuota         = "quota_exceeded"
)

// Answer is the outcome of composing a response to a question. A degraded
// answer carries the fallback text and the reason the model was not used.
type Answer struct {
	Text     string
	Degraded bool
	Reason   string
}

// Fallback returns the canned answer used when the model is unavailable.
func Fallback(query, reason string) Answer {
	return Answer{
		Text: "I understand you're asking about: " + query +
			". However, I need more specific information from the documents to provide a comprehensive answer." +
			" Please check if the relevant documents are uploaded to the project.",
		Degraded: true,
		Reason:   reason,
	}
}

// Result is a composed answer plus the excerpts it was grounded on.
type Result struct {
	Query   string
	Answer  Answer
	Sources []Excerpt
}

// SourceNames returns the excerpt file names in rank order.
func (r Result) SourceNames() []string {
	out := make([]string, len(r.Sources))
	for i := range r.Sources {
		out[i] = r.Sources[i].SourceName
	}
	return out
}
