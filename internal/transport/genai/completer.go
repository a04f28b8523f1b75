package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kailas-cloud/labdex/internal/domain"
	"github.com/kailas-cloud/labdex/internal/metrics"
)

// DefaultModel is used when the configuration names none.
const DefaultModel = "gemini-2.0-flash"

// Completer generates answers with Google's Gemini API.
type Completer struct {
	client   *genai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// Config holds the Gemini provider settings. BaseURL is only set in tests or behind a proxy.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Logger   *zap.Logger
}

// NewCompleter creates a Gemini provider.
func NewCompleter(ctx context.Context, cfg *Config) (*Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	provider := cfg.Provider
	if provider == "" {
		provider = "gemini"
	}
	return &Completer{client: client, model: model, provider: provider, logger: cfg.Logger}, nil
}

// Complete implements domain.Completer.
func (c *Completer) Complete(ctx context.Context, p domain.Prompt) (domain.Completion, error) {
	config := &genai.GenerateContentConfig{}
	if p.System != "" {
		config.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}
	if p.MaxTokens > 0 {
		config.MaxOutputTokens = int32(p.MaxTokens)
	}
	config.Temperature = genai.Ptr(p.Temperature)

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(p.User), config)
	duration := time.Since(start)

	if err != nil {
		metrics.AnswerRequestsTotal.WithLabelValues(c.provider, c.model, "error").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.Completion{}, fmt.Errorf("gemini generate: %w", domain.ErrAnswerTimeout)
		}
		return domain.Completion{}, fmt.Errorf("gemini generate: %v: %w", err, domain.ErrAnswerProviderError)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		metrics.AnswerRequestsTotal.WithLabelValues(c.provider, c.model, "empty").Inc()
		return domain.Completion{}, fmt.Errorf("gemini response without text: %w", domain.ErrAnswerEmpty)
	}

	metrics.AnswerRequestsTotal.WithLabelValues(c.provider, c.model, "success").Inc()
	metrics.AnswerRequestDuration.WithLabelValues(c.provider, c.model).Observe(duration.Seconds())

	out := domain.Completion{Text: text}
	if u := resp.UsageMetadata; u != nil {
		out.PromptTokens = int(u.PromptTokenCount)
		out.CompletionTokens = int(u.CandidatesTokenCount)
		metrics.AnswerTokensTotal.WithLabelValues(c.provider, c.model, "prompt").Add(float64(u.PromptTokenCount))
		metrics.AnswerTokensTotal.WithLabelValues(c.provider, c.model, "completion").Add(float64(u.CandidatesTokenCount))
	}
	return out, nil
}

// HealthCheck fetches the configured model's metadata.
func (c *Completer) HealthCheck(ctx context.Context) error {
	if _, err := c.client.Models.Get(ctx, c.model, nil); err != nil {
		return fmt.Errorf("get model %s: %w", c.model, err)
	}
	return nil
}
