package project

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a research project.
type Status string

// Well-known statuses. Other values are stored as-is.
const (
	StatusPlanning  Status = "PLANNING"
	StatusActive    Status = "ACTIVE"
	StatusOnHold    Status = "ON_HOLD"
	StatusCompleted Status = "COMPLETED"
)

// Attrs carries the mutable attributes used to build a Project.
type Attrs struct {
	Title        string
	Description  string
	Keywords     string
	ResearchArea string
	Status       Status
	StartDate    *time.Time
	EndDate      *time.Time
}

// Project is the research project aggregate. Dates are optional calendar days.
type Project struct {
	id    string
	attrs Attrs
}

// New validates and creates a Project. An end date before the start date is
// kept as given; analytics clamps the duration to one day.
func New(id string, a Attrs) (Project, error) {
	if strings.TrimSpace(id) == "" {
		return Project{}, fmt.Errorf("project ID is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		return Project{}, fmt.Errorf("project title is required")
	}
	if a.Status == "" {
		a.Status = StatusPlanning
	}
	a.StartDate = day(a.StartDate)
	a.EndDate = day(a.EndDate)
	return Project{id: id, attrs: a}, nil
}

// Reconstruct creates a Project without validation (storage hydration).
func Reconstruct(id string, a Attrs) Project {
	return Project{id: id, attrs: a}
}

// ID returns the project identifier.
func (p *Project) ID() string { return p.id }

// Title returns the project title.
func (p *Project) Title() string { return p.attrs.Title }

// Description returns the free-text description.
func (p *Project) Description() string { return p.attrs.Description }

// Keywords returns the raw keyword string.
func (p *Project) Keywords() string { return p.attrs.Keywords }

// ResearchArea returns the research area.
func (p *Project) ResearchArea() string { return p.attrs.ResearchArea }

// Status returns the lifecycle status.
func (p *Project) Status() Status { return p.attrs.Status }

// StartDate returns the start day or nil.
func (p *Project) StartDate() *time.Time { return p.attrs.StartDate }

// EndDate returns the planned end day or nil.
func (p *Project) EndDate() *time.Time { return p.attrs.EndDate }

// Attrs returns a copy of the attributes.
func (p *Project) Attrs() Attrs { return p.attrs }

// day truncates t to midnight UTC of its calendar day.
func day(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
