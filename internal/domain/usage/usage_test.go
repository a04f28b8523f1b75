package usage

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/labdex/internal/domain"
)

func TestNewReport(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	r := NewReport(PeriodMonth, start, end, "groq", 384200, 1000000)

	if r.Period() != PeriodMonth || r.Provider() != "groq" {
		t.Errorf("unexpected identity: %+v", r)
	}
	if !r.PeriodStart().Equal(start) || !r.PeriodEnd().Equal(end) {
		t.Errorf("unexpected window: %v - %v", r.PeriodStart(), r.PeriodEnd())
	}
	if r.TokensRemaining() != 615800 || r.Exhausted() {
		t.Errorf("remaining = %d exhausted = %v", r.TokensRemaining(), r.Exhausted())
	}
}

func TestReport_Limits(t *testing.T) {
	tests := []struct {
		name          string
		used, limit   int64
		wantRemaining int64
		wantExhausted bool
	}{
		{"unlimited", 500, 0, -1, false},
		{"at cap", 100, 100, 0, true},
		{"over cap", 130, 100, 0, true},
		{"untouched", 0, 100, 100, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReport(PeriodDay, time.Time{}, time.Time{}, "p", tc.used, tc.limit)
			if r.TokensRemaining() != tc.wantRemaining || r.Exhausted() != tc.wantExhausted {
				t.Errorf("remaining = %d exhausted = %v", r.TokensRemaining(), r.Exhausted())
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]Period{"": PeriodDay, "day": PeriodDay, "month": PeriodMonth} {
		got, err := ParsePeriod(in)
		if err != nil || got != want {
			t.Errorf("ParsePeriod(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParsePeriod("total"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("ParsePeriod(total) err = %v", err)
	}
}
