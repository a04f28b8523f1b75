package project

import (
	"time"

	"github.com/oapi-codegen/runtime/types"

	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
)

// projectRow is the stored JSON form of a project. Dates are calendar days.
type projectRow struct {
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	Keywords     string      `json:"keywords,omitempty"`
	ResearchArea string      `json:"researchArea,omitempty"`
	Status       string      `json:"status"`
	StartDate    *types.Date `json:"startDate,omitempty"`
	EndDate      *types.Date `json:"endDate,omitempty"`
}

func toRow(p *domproj.Project) projectRow {
	return projectRow{
		Title:        p.Title(),
		Description:  p.Description(),
		Keywords:     p.Keywords(),
		ResearchArea: p.ResearchArea(),
		Status:       string(p.Status()),
		StartDate:    toDate(p.StartDate()),
		EndDate:      toDate(p.EndDate()),
	}
}

func fromRow(id string, r projectRow) domproj.Project {
	return domproj.Reconstruct(id, domproj.Attrs{
		Title:        r.Title,
		Description:  r.Description,
		Keywords:     r.Keywords,
		ResearchArea: r.ResearchArea,
		Status:       domproj.Status(r.Status),
		StartDate:    fromDate(r.StartDate),
		EndDate:      fromDate(r.EndDate),
	})
}

func toDate(t *time.Time) *types.Date {
	if t == nil {
		return nil
	}
	return &types.Date{Time: *t}
}

func fromDate(d *types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &t
}
