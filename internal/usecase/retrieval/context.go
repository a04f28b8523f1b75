package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	domret "github.com/kailas-cloud/labdex/internal/domain/retrieval"
	"github.com/kailas-cloud/labdex/internal/domain/lexical"
)

// Excerpt selection defaults.
const (
	DefaultMinRelevance = 0.1
	DefaultTopK         = 5
)

// ContextBuilder selects the document excerpts most relevant to a question
// and renders them as model context.
type ContextBuilder struct {
	docs         ProjectDocumentReader
	minRelevance float64
	topK         int
}

// NewContextBuilder creates a builder. Non-positive topK uses DefaultTopK.
func NewContextBuilder(docs ProjectDocumentReader, minRelevance float64, topK int) *ContextBuilder {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &ContextBuilder{docs: docs, minRelevance: minRelevance, topK: topK}
}

// Build scores each described document of the project by query term coverage,
// keeps those above the relevance threshold, and renders the top excerpts as
// "From {fileName}: {snippet}" blocks. A project without documents yields an
// empty context.
func (b *ContextBuilder) Build(ctx context.Context, query, projectID string) (string, []domret.Excerpt, error) {
	docs, err := b.docs.ListByProject(ctx, projectID)
	if err != nil {
		return "", nil, fmt.Errorf("list documents of %s: %w", projectID, err)
	}

	var excerpts []domret.Excerpt
	for i := range docs {
		desc := docs[i].Description()
		if desc == "" {
			continue
		}
		rel := lexical.Coverage(query, desc)
		if rel <= b.minRelevance {
			continue
		}
		excerpts = append(excerpts, domret.Excerpt{
			Content:    desc,
			SourceID:   docs[i].ID(),
			SourceName: docs[i].FileName(),
			Relevance:  rel,
			Snippet:    lexical.Snippet(desc, query),
		})
	}

	sort.SliceStable(excerpts, func(i, j int) bool {
		return excerpts[i].Relevance > excerpts[j].Relevance
	})
	if len(excerpts) > b.topK {
		excerpts = excerpts[:b.topK]
	}

	return Render(excerpts), excerpts, nil
}

// Render joins excerpts into the context block sent to the model.
func Render(excerpts []domret.Excerpt) string {
	blocks := make([]string, len(excerpts))
	for i, e := range excerpts {
		blocks[i] = fmt.Sprintf("From %s: %s", e.SourceName, e.Snippet)
	}
	return strings.Join(blocks, "\n\n")
}
