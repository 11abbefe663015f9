package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/tutor/internal/platform/logger"
	"github.com/abhisek/tutor/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, tracing, retry and logging
// middleware. A missing API key does not fail construction: the returned
// provider reports an authentication error on every call instead, so the
// server can start and answer health checks without credentials.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	var base Provider

	err := cfg.Validate()
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		base = &unconfiguredProvider{model: cfg.ModelName(), err: err}
	case err != nil:
		return nil, err
	default:
		base, err = newBaseProvider(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
		}
	}

	// Wrap with middleware: caller → timeout → tracing → retry → logging → base
	logged := WithLogging(base, eventRepo, log)
	retried := WithRetry(logged, cfg.Retry)
	traced := WithTracing(retried)
	return WithTimeout(traced, cfg.Timeout), nil
}

func newBaseProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		return NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}

// unconfiguredProvider stands in for a vendor adapter whose credential is
// missing.
type unconfiguredProvider struct {
	model string
	err   error
}

func (p *unconfiguredProvider) Generate(_ context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return nil, &ErrAuthentication{Err: p.err}
}

func (p *unconfiguredProvider) ModelID() string {
	return p.model
}
