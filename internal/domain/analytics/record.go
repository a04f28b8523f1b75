package analytics

import (
	"fmt"
	"strings"
	"time"
)

// Attrs carries the computed values of an analytics snapshot. Dates are
// calendar days at midnight UTC.
type Attrs struct {
	ProjectID          string
	ProjectTitle       string
	StartDate          time.Time
	EndDate            time.Time
	ActualEndDate      time.Time
	DurationDays       int
	ActualDurationDays int
	// CompletionRate is a percentage in [0, 100].
	CompletionRate   float64
	OnTimeCompletion bool
	CalculatedDate   time.Time
}

// Record is one immutable analytics snapshot of a project. A project
// accumulates records over time; none is ever updated.
type Record struct {
	id    string
	attrs Attrs
}

// New validates and creates a Record.
func New(id string, a Attrs) (Record, error) {
	if strings.TrimSpace(id) == "" {
		return Record{}, fmt.Errorf("record ID is required")
	}
	if strings.TrimSpace(a.ProjectID) == "" {
		return Record{}, fmt.Errorf("project ID is required")
	}
	if a.CompletionRate < 0 || a.CompletionRate > 100 {
		return Record{}, fmt.Errorf("completion rate %v out of range [0, 100]", a.CompletionRate)
	}
	return Record{id: id, attrs: a}, nil
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(id string, a Attrs) Record {
	return Record{id: id, attrs: a}
}

func (r *Record) ID() string               { return r.id }
func (r *Record) ProjectID() string        { return r.attrs.ProjectID }
func (r *Record) ProjectTitle() string     { return r.attrs.ProjectTitle }
func (r *Record) StartDate() time.Time     { return r.attrs.StartDate }
func (r *Record) EndDate() time.Time       { return r.attrs.EndDate }
func (r *Record) ActualEndDate() time.Time { return r.attrs.ActualEndDate }
func (r *Record) DurationDays() int        { return r.attrs.DurationDays }
func (r *Record) ActualDurationDays() int  { return r.attrs.ActualDurationDays }
func (r *Record) CompletionRate() float64  { return r.attrs.CompletionRate }
func (r *Record) OnTimeCompletion() bool   { return r.attrs.OnTimeCompletion }
func (r *Record) CalculatedDate() time.Time {
	return r.attrs.CalculatedDate
}

// Attrs returns a copy of the computed values.
func (r *Record) Attrs() Attrs { return r.attrs }
