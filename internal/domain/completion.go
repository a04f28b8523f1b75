package domain

import "context"

// Prompt is a single-turn request to an external language model.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Completion is the text produced by the model plus token usage when reported.
type Completion struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Completer is the contract every language model provider implements.
// Implementations wrap failures with ErrAnswerProviderError.
type Completer interface {
	Complete(ctx context.Context, p Prompt) (Completion, error)
}

// HealthChecker verifies provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
