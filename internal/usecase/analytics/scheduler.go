package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/gorhill/cronexpr"
	"go.uber.org/zap"

	dombatch "github.com/kailas-cloud/labdex/internal/domain/batch"
)

// Recalculator runs one batch recalculation.
type Recalculator interface {
	RecalculateAll(ctx context.Context) (dombatch.Summary, error)
}

// Scheduler triggers RecalculateAll on a cron schedule. Runs never overlap:
// the next fire time is computed after the previous run finishes.
type Scheduler struct {
	expr   *cronexpr.Expression
	svc    Recalculator
	now    func() time.Time
	logger *zap.Logger
}

// NewScheduler parses a standard cron expression (5 to 7 fields, or a macro such as @daily).
func NewScheduler(spec string, svc Recalculator, logger *zap.Logger) (*Scheduler, error) {
	expr, err := cronexpr.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse analytics schedule %q: %w", spec, err)
	}
	return &Scheduler{expr: expr, svc: svc, now: time.Now, logger: logger}, nil
}

// Next returns the first fire time strictly after t. Zero means the
// expression never fires again.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.expr.Next(t)
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		next := s.Next(s.now())
		if next.IsZero() {
			s.logger.Warn("analytics schedule has no future fire time")
			<-ctx.Done()
			return nil
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		summary, err := s.svc.RecalculateAll(ctx)
		if err != nil {
			s.logger.Error("scheduled analytics run failed", zap.Error(err))
			continue
		}
		s.logger.Info("scheduled analytics run finished",
			zap.Int("calculated", summary.Calculated),
			zap.Int("failed", summary.Failed),
		)
	}
}
