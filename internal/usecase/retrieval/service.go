package retrieval

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/domain"
	domdoc "github.com/kailas-cloud/labdex/internal/domain/document"
	"github.com/kailas-cloud/labdex/internal/domain/lexical"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
	domret "github.com/kailas-cloud/labdex/internal/domain/retrieval"
)

const recentActivityLimit = 5

// Activity is one recent upload of a project.
type Activity struct {
	DocumentID string
	FileName   string
	UploadDate time.Time
	UploadedBy string
}

// Insights summarizes the documents and team of a project.
type Insights struct {
	ProjectID      string
	ProjectTitle   string
	Status         domproj.Status
	Description    string
	TotalDocuments int
	DocumentTypes  map[string]int
	RecentActivity []Activity
	KeyTopics      []string
	TeamSize       int
}

// Service answers project questions from document context.
type Service struct {
	builder   *ContextBuilder
	composer  *Composer
	projects  ProjectReader
	docs      ProjectDocumentReader
	processor DocumentProcessor
	members   ProjectMemberReader
	logger    *zap.Logger
}

// New creates a retrieval service.
func New(
	builder *ContextBuilder, composer *Composer,
	projects ProjectReader, docs ProjectDocumentReader,
	processor DocumentProcessor, members ProjectMemberReader,
	logger *zap.Logger,
) *Service {
	return &Service{
		builder: builder, composer: composer,
		projects: projects, docs: docs,
		processor: processor, members: members,
		logger: logger,
	}
}

// Ask builds context from the project's documents and composes an answer.
// Only storage failures are returned as errors; model failures degrade.
func (s *Service) Ask(ctx context.Context, query, projectID string) (domret.Result, error) {
	contextBlock, excerpts, err := s.builder.Build(ctx, query, projectID)
	if err != nil {
		return domret.Result{}, fmt.Errorf("build context: %w", err)
	}
	answer := s.composer.Compose(ctx, query, contextBlock)
	return domret.Result{Query: query, Answer: answer, Sources: excerpts}, nil
}

// ProcessDocument marks a document as processed. An unknown document returns
// ErrDocumentNotFound; a storage failure is logged and reported as false.
func (s *Service) ProcessDocument(ctx context.Context, documentID string) (bool, error) {
	d, err := s.processor.Get(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return false, err
		}
		s.logger.Error("Document lookup failed", zap.String("document_id", documentID), zap.Error(err))
		return false, nil
	}

	if err := s.processor.MarkProcessed(ctx, documentID); err != nil {
		s.logger.Error("Document processing failed",
			zap.String("document_id", documentID),
			zap.String("file_name", d.FileName()),
			zap.Error(err),
		)
		return false, nil
	}

	s.logger.Info("Document processed", zap.String("document_id", documentID), zap.String("file_name", d.FileName()))
	return true, nil
}

// Insights returns document statistics, recent uploads and key topics of a project.
func (s *Service) Insights(ctx context.Context, projectID string) (Insights, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return Insights{}, fmt.Errorf("get project: %w", err)
	}
	docs, err := s.docs.ListByProject(ctx, projectID)
	if err != nil {
		return Insights{}, fmt.Errorf("list documents: %w", err)
	}
	members, err := s.members.ListByProject(ctx, projectID)
	if err != nil {
		return Insights{}, fmt.Errorf("list members: %w", err)
	}

	byType := make(map[string]int)
	var corpus strings.Builder
	for i := range docs {
		byType[docs[i].FileType()]++
		if d := docs[i].Description(); d != "" {
			corpus.WriteString(d)
			corpus.WriteByte(' ')
		}
	}

	return Insights{
		ProjectID:      p.ID(),
		ProjectTitle:   p.Title(),
		Status:         p.Status(),
		Description:    p.Description(),
		TotalDocuments: len(docs),
		DocumentTypes:  byType,
		RecentActivity: recentActivity(docs),
		KeyTopics:      lexical.TopicKeywords.Extract(corpus.String()),
		TeamSize:       len(members),
	}, nil
}

func recentActivity(docs []domdoc.Document) []Activity {
	sorted := make([]domdoc.Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UploadDate().After(sorted[j].UploadDate())
	})
	if len(sorted) > recentActivityLimit {
		sorted = sorted[:recentActivityLimit]
	}

	out := make([]Activity, len(sorted))
	for i := range sorted {
		out[i] = Activity{
			DocumentID: sorted[i].ID(),
			FileName:   sorted[i].FileName(),
			UploadDate: sorted[i].UploadDate(),
			UploadedBy: sorted[i].UploadedBy(),
		}
	}
	return out
}
