package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded means answers fall back to the canned text; search and analytics still work.
	Degraded Status = "degraded"
	// Unhealthy means the store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// Component names in Report.Checks.
const (
	ComponentDatabase = "database"
	ComponentAnswer   = "answer_provider"
)

const checkTimeout = 3 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db     DBPinger
	answer AnswerChecker
}

// New creates a Service. answer is nil when no provider is configured.
func New(db DBPinger, answer AnswerChecker) *Service {
	return &Service{db: db, answer: answer}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	checks[ComponentDatabase] = run(ctx, s.db.Ping)
	if s.answer != nil {
		checks[ComponentAnswer] = run(ctx, s.answer.HealthCheck)
	}

	status := Healthy
	switch {
	case checks[ComponentDatabase] == CheckError:
		status = Unhealthy
	case checks[ComponentAnswer] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

func run(ctx context.Context, check func(context.Context) error) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if err := check(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
