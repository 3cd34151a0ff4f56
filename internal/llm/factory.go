package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration, wrapped with request
// event logging. eventRepo may be nil, in which case requests are not logged.
func NewProvider(ctx context.Context, cfg Config, eventRepo EventRecorder) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
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

	if eventRepo == nil {
		return base, nil
	}
	return WithLogging(base, cfg.Provider, eventRepo), nil
}

// NewProviderFromEnv resolves configuration from INTERNTRACK_* variables,
// falling back to the standard vendor key variables, and builds the
// primary and fast-tier providers.
func NewProviderFromEnv(ctx context.Context, eventRepo EventRecorder) (primary, fast Provider, cfg Config, err error) {
	cfg = ConfigFromEnv()
	if cfg.Validate() != nil {
		if discovered, ok := DiscoverConfig(); ok {
			cfg = discovered
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, cfg, err
	}

	primary, err = NewProvider(ctx, cfg, eventRepo)
	if err != nil {
		return nil, nil, cfg, err
	}
	fast, err = NewProvider(ctx, cfg.Fast(), eventRepo)
	if err != nil {
		return nil, nil, cfg, err
	}
	return primary, fast, cfg, nil
}
