package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oapi-codegen/runtime/types"

	domanalytics "github.com/kailas-cloud/labdex/internal/domain/analytics"
)

// store is the consumer interface for analytics history (ISP).
type store interface {
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

type recordRow struct {
	ID                 string     `json:"id"`
	ProjectID          string     `json:"projectId"`
	ProjectTitle       string     `json:"projectTitle"`
	StartDate          types.Date `json:"startDate"`
	EndDate            types.Date `json:"endDate"`
	ActualEndDate      types.Date `json:"actualEndDate"`
	DurationDays       int        `json:"durationDays"`
	ActualDurationDays int        `json:"actualDurationDays"`
	CompletionRate     float64    `json:"completionRate"`
	OnTimeCompletion   bool       `json:"onTimeCompletion"`
	CalculatedDate     types.Date `json:"calculatedDate"`
}

// Repo is the append-only analytics history. Each project has its own list
// and every record is also appended to a global log.
type Repo struct {
	store  store
	prefix string
}

// New creates an analytics repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Append stores a new record. Records are never updated.
func (r *Repo) Append(ctx context.Context, rec domanalytics.Record) error {
	data, err := json.Marshal(toRow(&rec))
	if err != nil {
		return fmt.Errorf("marshal analytics %s: %w", rec.ID(), err)
	}
	if err := r.store.RPush(ctx, r.projectKey(rec.ProjectID()), string(data)); err != nil {
		return fmt.Errorf("append analytics for %s: %w", rec.ProjectID(), err)
	}
	if err := r.store.RPush(ctx, r.logKey(), string(data)); err != nil {
		return fmt.Errorf("append analytics log: %w", err)
	}
	return nil
}

// History returns the records of one project, newest first.
func (r *Repo) History(ctx context.Context, projectID string) ([]domanalytics.Record, error) {
	return r.read(ctx, r.projectKey(projectID))
}

// All returns every record, newest first.
func (r *Repo) All(ctx context.Context) ([]domanalytics.Record, error) {
	return r.read(ctx, r.logKey())
}

func (r *Repo) read(ctx context.Context, key string) ([]domanalytics.Record, error) {
	raw, err := r.store.LRange(ctx, key, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}
	out := make([]domanalytics.Record, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var row recordRow
		if err := json.Unmarshal([]byte(raw[i]), &row); err != nil {
			return nil, fmt.Errorf("unmarshal analytics in %s: %w", key, err)
		}
		out = append(out, fromRow(row))
	}
	return out, nil
}

func (r *Repo) projectKey(projectID string) string {
	return fmt.Sprintf("%sanalytics:project:%s", r.prefix, projectID)
}

func (r *Repo) logKey() string {
	return r.prefix + "analytics:log"
}

func toRow(rec *domanalytics.Record) recordRow {
	return recordRow{
		ID:                 rec.ID(),
		ProjectID:          rec.ProjectID(),
		ProjectTitle:       rec.ProjectTitle(),
		StartDate:          types.Date{Time: rec.StartDate()},
		EndDate:            types.Date{Time: rec.EndDate()},
		ActualEndDate:      types.Date{Time: rec.ActualEndDate()},
		DurationDays:       rec.DurationDays(),
		ActualDurationDays: rec.ActualDurationDays(),
		CompletionRate:     rec.CompletionRate(),
		OnTimeCompletion:   rec.OnTimeCompletion(),
		CalculatedDate:     types.Date{Time: rec.CalculatedDate()},
	}
}

func fromRow(row recordRow) domanalytics.Record {
	return domanalytics.Reconstruct(row.ID, domanalytics.Attrs{
		ProjectID:          row.ProjectID,
		ProjectTitle:       row.ProjectTitle,
		StartDate:          day(row.StartDate),
		EndDate:            day(row.EndDate),
		ActualEndDate:      day(row.ActualEndDate),
		DurationDays:       row.DurationDays,
		ActualDurationDays: row.ActualDurationDays,
		CompletionRate:     row.CompletionRate,
		OnTimeCompletion:   row.OnTimeCompletion,
		CalculatedDate:     day(row.CalculatedDate),
	})
}

func day(d types.Date) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
