package labdex

import (
	"context"
	"fmt"

	domanalytics "github.com/kailas-cloud/labdex/internal/domain/analytics"
)

// CalculateAnalytics computes and stores a timeline snapshot for a project.
// Returns nil when the project does not exist.
func (c *Client) CalculateAnalytics(ctx context.Context, projectID string) (*Analytics, error) {
	rec, ok, err := c.analytics.Calculate(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("calculate analytics: %w", err)
	}
	if !ok {
		return nil, nil
	}
	a := fromRecord(&rec)
	return &a, nil
}

// RecalculateAll snapshots every project. Per-project failures are counted,
// not returned.
func (c *Client) RecalculateAll(ctx context.Context) (BatchSummary, error) {
	s, err := c.analytics.RecalculateAll(ctx)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("recalculate all: %w", err)
	}
	return BatchSummary{Calculated: s.Calculated, Failed: s.Failed, Skipped: s.Skipped}, nil
}

// AnalyticsHistory returns a project's snapshots, newest first.
func (c *Client) AnalyticsHistory(ctx context.Context, projectID string) ([]Analytics, error) {
	records, err := c.analytics.History(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("analytics history: %w", err)
	}
	out := make([]Analytics, len(records))
	for i := range records {
		out[i] = fromRecord(&records[i])
	}
	return out, nil
}

func fromRecord(r *domanalytics.Record) Analytics {
	return Analytics{
		ID:                 r.ID(),
		ProjectID:          r.ProjectID(),
		ProjectTitle:       r.ProjectTitle(),
		StartDate:          r.StartDate(),
		EndDate:            r.EndDate(),
		ActualEndDate:      r.ActualEndDate(),
		DurationDays:       r.DurationDays(),
		ActualDurationDays: r.ActualDurationDays(),
		CompletionRate:     r.CompletionRate(),
		OnTimeCompletion:   r.OnTimeCompletion(),
		CalculatedDate:     r.CalculatedDate(),
	}
}
