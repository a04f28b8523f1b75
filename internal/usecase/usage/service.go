package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/labdex/internal/domain/usage"
)

// Service reports language model token usage.
type Service struct {
	br       BudgetReader
	provider string
	now      func() time.Time
}

// New creates a Service. br can be nil (no budget tracking configured);
// reports then carry zero usage and no limit.
func New(br BudgetReader, provider string) *Service {
	return &Service{br: br, provider: provider, now: time.Now}
}

// WithClock overrides the time source used when no tracker is configured.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	if s.br == nil {
		now := s.now().UTC()
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		if period == domusage.PeriodMonth {
			return domusage.NewReport(period, month, month.AddDate(0, 1, 0), s.provider, 0, 0)
		}
		return domusage.NewReport(domusage.PeriodDay, day, day.AddDate(0, 0, 1), s.provider, 0, 0)
	}

	snap := s.br.Snapshot()
	if period == domusage.PeriodMonth {
		return domusage.NewReport(period, snap.Month, snap.Month.AddDate(0, 1, 0),
			snap.Provider, snap.MonthlyUsed, snap.MonthlyLimit)
	}
	return domusage.NewReport(domusage.PeriodDay, snap.Day, snap.Day.AddDate(0, 0, 1),
		snap.Provider, snap.DailyUsed, snap.DailyLimit)
}
