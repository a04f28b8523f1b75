package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// AnswerChecker checks language model provider availability.
type AnswerChecker interface {
	HealthCheck(ctx context.Context) error
}
