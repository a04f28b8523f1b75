package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/labdex/internal/domain"
	domanalytics "github.com/kailas-cloud/labdex/internal/domain/analytics"
	dombatch "github.com/kailas-cloud/labdex/internal/domain/batch"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
	"github.com/kailas-cloud/labdex/internal/metrics"
)

// DefaultWorkers bounds the parallelism of RecalculateAll.
const DefaultWorkers = 4

// Service calculates and stores project analytics snapshots.
type Service struct {
	projects ProjectReader
	records  RecordStore
	calc     Calculator
	workers  int
	now      func() time.Time
	newID    func() string
	logger   *zap.Logger
}

// New creates an analytics service.
func New(projects ProjectReader, records RecordStore, calc Calculator, logger *zap.Logger) *Service {
	return &Service{
		projects: projects,
		records:  records,
		calc:     calc,
		workers:  DefaultWorkers,
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   logger,
	}
}

// WithWorkers configures the batch worker limit.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// WithClock overrides the source of "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// WithIDGenerator overrides record ID generation.
func (s *Service) WithIDGenerator(gen func() string) *Service {
	if gen != nil {
		s.newID = gen
	}
	return s
}

// Calculate computes and appends a fresh snapshot for one project.
// The bool is false when the project does not exist; nothing is stored then.
func (s *Service) Calculate(ctx context.Context, projectID string) (domanalytics.Record, bool, error) {
	p, err := s.projects.Get(ctx, projectID)
	if errors.Is(err, domain.ErrProjectNotFound) {
		metrics.AnalyticsCalculationsTotal.WithLabelValues("missing").Inc()
		return domanalytics.Record{}, false, nil
	}
	if err != nil {
		metrics.AnalyticsCalculationsTotal.WithLabelValues("error").Inc()
		return domanalytics.Record{}, false, fmt.Errorf("get project %s: %w", projectID, err)
	}

	rec, err := s.calculate(ctx, &p)
	if err != nil {
		metrics.AnalyticsCalculationsTotal.WithLabelValues("error").Inc()
		return domanalytics.Record{}, false, err
	}
	metrics.AnalyticsCalculationsTotal.WithLabelValues("ok").Inc()
	return rec, true, nil
}

// RecalculateAll snapshots every project with a bounded worker pool.
// A failing project is logged and reported in the summary; the others proceed.
// Only a failure to list projects aborts the run.
func (s *Service) RecalculateAll(ctx context.Context) (dombatch.Summary, error) {
	start := time.Now()
	defer func() {
		metrics.AnalyticsBatchDuration.Observe(time.Since(start).Seconds())
	}()

	projects, err := s.projects.List(ctx)
	if err != nil {
		return dombatch.Summary{}, fmt.Errorf("list projects: %w", err)
	}

	results := make([]dombatch.Result, len(projects))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range projects {
		g.Go(func() error {
			results[i] = s.recalculateOne(ctx, &projects[i])
			return nil
		})
	}
	_ = g.Wait()

	summary := dombatch.Summarize(results)
	s.logger.Info("analytics recalculated",
		zap.Int("projects", len(projects)),
		zap.Int("calculated", summary.Calculated),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped),
		zap.Duration("elapsed", time.Since(start)),
	)
	return summary, nil
}

func (s *Service) recalculateOne(ctx context.Context, p *domproj.Project) dombatch.Result {
	if err := ctx.Err(); err != nil {
		metrics.AnalyticsCalculationsTotal.WithLabelValues("skipped").Inc()
		return dombatch.NewSkipped(p.ID())
	}
	if _, err := s.calculate(ctx, p); err != nil {
		metrics.AnalyticsCalculationsTotal.WithLabelValues("error").Inc()
		s.logger.Warn("analytics calculation failed",
			zap.String("project_id", p.ID()), zap.Error(err))
		return dombatch.NewError(p.ID(), err)
	}
	metrics.AnalyticsCalculationsTotal.WithLabelValues("ok").Inc()
	return dombatch.NewOK(p.ID())
}

func (s *Service) calculate(ctx context.Context, p *domproj.Project) (domanalytics.Record, error) {
	rec, err := domanalytics.New(s.newID(), s.calc.Calculate(p, s.now()))
	if err != nil {
		return domanalytics.Record{}, fmt.Errorf("build analytics for %s: %w", p.ID(), err)
	}
	if err := s.records.Append(ctx, rec); err != nil {
		return domanalytics.Record{}, fmt.Errorf("store analytics for %s: %w", p.ID(), err)
	}
	return rec, nil
}

// History returns the stored snapshots of one project, newest first.
func (s *Service) History(ctx context.Context, projectID string) ([]domanalytics.Record, error) {
	recs, err := s.records.History(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("analytics history %s: %w", projectID, err)
	}
	return recs, nil
}

// All returns every stored snapshot, newest first.
func (s *Service) All(ctx context.Context) ([]domanalytics.Record, error) {
	recs, err := s.records.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics list: %w", err)
	}
	return recs, nil
}
