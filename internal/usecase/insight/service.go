package insight

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/labdex/internal/domain/lexical"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
)

const similarLimit = 5

// DocumentAnalysis is the lexical profile of a document description.
type DocumentAnalysis struct {
	DocumentID  string
	FileName    string
	FileType    string
	Summary     string
	Keywords    []string
	Sentiment   Sentiment
	Readability float64
}

// SimilarProject is a related project with its keyword overlap.
type SimilarProject struct {
	Project        domproj.Project
	Similarity     float64
	CommonKeywords []string
}

// Service derives text analyses and project recommendations.
type Service struct {
	docs     DocumentReader
	projects ProjectReader
}

// New creates an insight service.
func New(docs DocumentReader, projects ProjectReader) *Service {
	return &Service{docs: docs, projects: projects}
}

// AnalyzeDocument summarizes a document description and scores its tone and readability.
func (s *Service) AnalyzeDocument(ctx context.Context, documentID string) (DocumentAnalysis, error) {
	d, err := s.docs.Get(ctx, documentID)
	if err != nil {
		return DocumentAnalysis{}, fmt.Errorf("get document: %w", err)
	}
	text := d.Description()
	return DocumentAnalysis{
		DocumentID:  d.ID(),
		FileName:    d.FileName(),
		FileType:    d.FileType(),
		Summary:     Summarize(text),
		Keywords:    lexical.DefaultKeywords.Extract(text),
		Sentiment:   Classify(text),
		Readability: Readability(text),
	}, nil
}

// SimilarProjects ranks the other projects of the same research area by
// keyword Jaccard similarity and returns the top five.
func (s *Service) SimilarProjects(ctx context.Context, projectID string) ([]SimilarProject, error) {
	ref, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	all, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out := []SimilarProject{}
	for i := range all {
		p := all[i]
		if p.ID() == ref.ID() || !strings.EqualFold(p.ResearchArea(), ref.ResearchArea()) {
			continue
		}
		score, common := Jaccard(ref.Keywords(), p.Keywords())
		out = append(out, SimilarProject{Project: p, Similarity: score, CommonKeywords: common})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > similarLimit {
		out = out[:similarLimit]
	}
	return out, nil
}
