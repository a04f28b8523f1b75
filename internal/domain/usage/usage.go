package usage

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/labdex/internal/domain"
)

// Period is the aggregation granularity.
type Period string

// Aggregation period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
)

// ParsePeriod maps a query value to a Period. Empty defaults to the day window.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodDay:
		return PeriodDay, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("unknown usage period %q: %w", s, domain.ErrInvalidInput)
	}
}

// Report is the language model token usage for one budget window.
type Report struct {
	period      Period
	periodStart time.Time
	periodEnd   time.Time
	provider    string
	tokensUsed  int64
	tokensLimit int64
}

// NewReport creates a usage report. A zero limit means unlimited.
func NewReport(period Period, start, end time.Time, provider string, used, limit int64) Report {
	return Report{
		period:      period,
		periodStart: start,
		periodEnd:   end,
		provider:    provider,
		tokensUsed:  used,
		tokensLimit: limit,
	}
}

// Period returns the aggregation granularity.
func (r *Report) Period() Period { return r.period }

// PeriodStart returns when the window opened.
func (r *Report) PeriodStart() time.Time { return r.periodStart }

// PeriodEnd returns when the window resets.
func (r *Report) PeriodEnd() time.Time { return r.periodEnd }

// Provider returns the language model provider name.
func (r *Report) Provider() string { return r.provider }

// TokensUsed returns tokens consumed in the window.
func (r *Report) TokensUsed() int64 { return r.tokensUsed }

// TokensLimit returns the window cap, 0 when unlimited.
func (r *Report) TokensLimit() int64 { return r.tokensLimit }

// TokensRemaining returns tokens left, -1 when unlimited.
func (r *Report) TokensRemaining() int64 {
	if r.tokensLimit == 0 {
		return -1
	}
	return max(0, r.tokensLimit-r.tokensUsed)
}

// Exhausted reports whether a capped window has no tokens left.
func (r *Report) Exhausted() bool {
	return r.tokensLimit > 0 && r.tokensUsed >= r.tokensLimit
}
