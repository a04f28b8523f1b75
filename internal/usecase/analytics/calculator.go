package analytics

import (
	"math"
	"time"

	domanalytics "github.com/kailas-cloud/labdex/internal/domain/analytics"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
)

// DefaultWindowDays is the planned length assumed for a project without an end date.
const DefaultWindowDays = 30

// Calculator derives completion metrics from project dates. It holds no state
// and the same project and day always produce the same values.
type Calculator struct {
	windowDays int
}

// NewCalculator creates a calculator. A non-positive window falls back to DefaultWindowDays.
func NewCalculator(windowDays int) Calculator {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return Calculator{windowDays: windowDays}
}

// Calculate computes the snapshot of p as seen on today.
//
// A missing start date means the project starts today; a missing end date
// means start plus the configured window. Once today passes the end date the
// project counts as fully elapsed: the rate saturates at 100 and the actual
// end moves to today.
func (c Calculator) Calculate(p *domproj.Project, today time.Time) domanalytics.Attrs {
	today = calendarDay(today)

	start := today
	if p.StartDate() != nil {
		start = calendarDay(*p.StartDate())
	}
	end := start.AddDate(0, 0, c.windowDays)
	if p.EndDate() != nil {
		end = calendarDay(*p.EndDate())
	}

	duration := max(1, daysBetween(start, end))
	actual := max(0, daysBetween(start, today))
	overdue := today.After(end)

	rate := math.Min(100, math.Max(0, float64(actual)/float64(duration)*100))
	actualEnd := end
	if overdue {
		rate = 100
		actualEnd = today
	}

	return domanalytics.Attrs{
		ProjectID:          p.ID(),
		ProjectTitle:       p.Title(),
		StartDate:          start,
		EndDate:            end,
		ActualEndDate:      actualEnd,
		DurationDays:       duration,
		ActualDurationDays: actual,
		CompletionRate:     rate,
		OnTimeCompletion:   !overdue,
		CalculatedDate:     today,
	}
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole days from a to b; negative when b precedes a.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
