package llm

import (
	"context"
	"fmt"

	"github.com/quillium/quillium/internal/store"
)

// NewProvider creates a Provider from configuration.
// The provider is wrapped with event logging, and with retry middleware
// when the retry budget allows more than one attempt.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	var p Provider = base
	if eventRepo != nil {
		p = WithLogging(p, eventRepo)
	}
	if cfg.Retry.MaxAttempts > 1 {
		p = WithRetry(p, cfg.Retry)
	}

	return p, nil
}

// NewProviderFromEnv discovers a provider from the environment.
// Returns (nil, nil) when no API key is configured; callers treat that as
// fallback-only mode rather than an error.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg, ok := DiscoverConfig()
	if !ok {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// The generation path never retries: a failed call degrades to the
	// deterministic fallback generator instead.
	cfg.Retry.MaxAttempts = 1

	return NewProvider(ctx, cfg, eventRepo)
}

// NewTranslationProviderFromEnv returns the provider used for translation.
// Translation prefers a dedicated OpenRouter backend when its key is set;
// otherwise it shares the generation provider. The translation provider
// honors the configured retry budget, unlike the generation path.
func NewTranslationProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, generation Provider) (Provider, error) {
	cfg := ConfigFromEnv()
	if cfg.OpenRouter.APIKey == "" {
		return generation, nil
	}
	cfg.Provider = "openrouter"
	return NewProvider(ctx, cfg, eventRepo)
}
