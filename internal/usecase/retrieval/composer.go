package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/domain"
	domret "github.com/kailas-cloud/labdex/internal/domain/retrieval"
	"github.com/kailas-cloud/labdex/internal/metrics"
)

const promptTemplate = "Based on the following research documents, please answer this question: %s\n\n" +
	"Context from documents:\n%s\n\n" +
	"Please provide a clear, concise answer based on the provided context. " +
	"If the context doesn't contain enough information, please mention that."

// ComposerConfig holds the model call parameters.
type ComposerConfig struct {
	SystemPrompt string
	MaxTokens    int
	Temperature  float32
	Timeout      time.Duration
}

// Composer asks the language model to answer a question from a context block.
// It never fails: every provider problem degrades to the canned fallback.
type Composer struct {
	completer domain.Completer
	cfg       ComposerConfig
	logger    *zap.Logger
}

// NewComposer creates a composer. completer may be nil, in which case every
// answer is the fallback.
func NewComposer(completer domain.Completer, cfg ComposerConfig, logger *zap.Logger) *Composer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Composer{completer: completer, cfg: cfg, logger: logger}
}

// BuildPrompt renders the user prompt for a question and its context.
func BuildPrompt(query, contextBlock string) string {
	return fmt.Sprintf(promptTemplate, query, contextBlock)
}

type outcome struct {
	completion domain.Completion
	err        error
}

// Compose returns the model answer, or the fallback when no provider is
// configured, the call fails, the deadline passes, or the reply is empty.
// The call runs in its own goroutine, so a provider that ignores cancellation
// cannot hold the caller past the deadline. A provider panic degrades to a
// provider error.
func (c *Composer) Compose(ctx context.Context, query, contextBlock string) domret.Answer {
	if c.completer == nil {
		return c.fallback(query, domret.ReasonNoProvider, nil)
	}

	prompt := domain.Prompt{
		System:      c.cfg.SystemPrompt,
		User:        BuildPrompt(query, contextBlock),
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: panic: %v", domain.ErrAnswerProviderError, r)}
			}
		}()
		comp, err := c.completer.Complete(ctx, prompt)
		done <- outcome{completion: comp, err: err}
	}()

	select {
	case <-ctx.Done():
		return c.fallback(query, domret.ReasonTimeout, ctx.Err())
	case o := <-done:
		switch {
		case errors.Is(o.err, domain.ErrAnswerTimeout) || errors.Is(o.err, context.DeadlineExceeded):
			return c.fallback(query, domret.ReasonTimeout, o.err)
		case errors.Is(o.err, domain.ErrAnswerQuotaExceeded):
			return c.fallback(query, domret.ReasonQuota, o.err)
		case o.err != nil:
			return c.fallback(query, domret.ReasonProviderError, o.err)
		}
		text := strings.TrimSpace(o.completion.Text)
		if text == "" {
			return c.fallback(query, domret.ReasonEmpty, domain.ErrAnswerEmpty)
		}
		return domret.Answer{Text: text}
	}
}

func (c *Composer) fallback(query, reason string, err error) domret.Answer {
	metrics.AnswerFallbacksTotal.WithLabelValues(reason).Inc()
	if err != nil {
		c.logger.Warn("Answer degraded to fallback", zap.String("reason", reason), zap.Error(err))
	}
	return domret.Fallback(query, reason)
}
