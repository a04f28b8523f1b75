package answer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/domain"
	"github.com/kailas-cloud/labdex/internal/metrics"
)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// InstrumentedCompleter wraps a Completer with budget enforcement and logging.
// Transport metrics (requests, duration, tokens) are recorded by the transports;
// this layer owns the budget and its gauge.
type InstrumentedCompleter struct {
	inner    domain.Completer
	provider string
	model    string
	budget   BudgetChecker
	logger   *zap.Logger
}

// NewInstrumentedCompleter wraps a completer. budget may be nil.
func NewInstrumentedCompleter(
	inner domain.Completer, provider, model string,
	budget BudgetChecker, logger *zap.Logger,
) *InstrumentedCompleter {
	return &InstrumentedCompleter{
		inner:    inner,
		provider: provider,
		model:    model,
		budget:   budget,
		logger:   logger,
	}
}

// Complete checks the budget, delegates, and records token usage.
func (c *InstrumentedCompleter) Complete(ctx context.Context, p domain.Prompt) (domain.Completion, error) {
	if c.budget != nil {
		if err := c.budget.Check(ctx); err != nil {
			c.logger.Error("Token budget exceeded",
				zap.String("provider", c.provider),
				zap.String("model", c.model),
				zap.Error(err),
			)
			return domain.Completion{}, fmt.Errorf("budget check: %w", err)
		}
	}

	start := time.Now()
	res, err := c.inner.Complete(ctx, p)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Completion request failed",
			zap.String("provider", c.provider),
			zap.String("model", c.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.Completion{}, fmt.Errorf("complete: %w", err)
	}

	if tokens := res.PromptTokens + res.CompletionTokens; c.budget != nil && tokens > 0 {
		c.budget.Record(int64(tokens))
		remaining := metrics.AnswerBudgetTokensRemaining
		remaining.WithLabelValues(c.provider, "daily").Set(float64(c.budget.RemainingDaily()))
		remaining.WithLabelValues(c.provider, "monthly").Set(float64(c.budget.RemainingMonthly()))
	}

	c.logger.Debug("Completion request completed",
		zap.String("provider", c.provider),
		zap.String("model", c.model),
		zap.Duration("duration", duration),
		zap.Int("prompt_tokens", res.PromptTokens),
		zap.Int("completion_tokens", res.CompletionTokens),
	)
	return res, nil
}

// HealthCheck delegates to the inner provider when it supports health checks.
func (c *InstrumentedCompleter) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}
